package models

// UserModel represents an account owner.
type UserModel struct {
	Base
	Fullname string `json:"fullname" gorm:"not null"`
	Email    string `json:"email"    gorm:"uniqueIndex;not null"`
	Password string `json:"-"        gorm:"not null"` // bcrypt hash; legacy rows may hold plain text until first login
}

func (UserModel) TableName() string { return "users" }
