package models

// ProjectModel is the root of a per-user document tree.
type ProjectModel struct {
	Base
	UserID      string `json:"userId"      gorm:"index;not null"`
	Title       string `json:"title"       gorm:"not null"`
	Type        string `json:"type"        gorm:"default:novel"`
	Description string `json:"description"`
}

func (ProjectModel) TableName() string { return "projects" }
