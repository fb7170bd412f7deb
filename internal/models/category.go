package models

// CategoryScope distinguishes the shared catalog from per-user categories.
type CategoryScope string

const (
	CategoryScopeGlobal CategoryScope = "global"
	CategoryScopeUser   CategoryScope = "user"
)

// CategoryModel is a note category. Global categories are shared and read-only;
// user categories belong to exactly one owner. Names are unique
// case-insensitively within (scope, user_id); the unique index below backs the
// idempotent global seeding against concurrent callers.
type CategoryModel struct {
	Base
	Name   string        `json:"name"   gorm:"not null;uniqueIndex:idx_categories_scope_owner_name"`
	Scope  CategoryScope `json:"scope"  gorm:"not null;uniqueIndex:idx_categories_scope_owner_name"`
	UserID *string       `json:"userId" gorm:"uniqueIndex:idx_categories_scope_owner_name"` // nil for global scope
}

func (CategoryModel) TableName() string { return "categories" }
