package access

import "gorm.io/gorm"

// Allowed reports whether a user may touch a resource with the given owner.
// Ownership is the only authorization rule: resources are never shared.
func Allowed(userID, ownerID string) bool {
	return userID != "" && userID == ownerID
}

// OwnedBy is a gorm scope restricting a query to rows owned by userID.
// Every load-by-id goes through this in the same query as the id filter, so
// "not found" and "not yours" are indistinguishable and there is no
// load-then-check window.
func OwnedBy(userID string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("user_id = ?", userID)
	}
}
