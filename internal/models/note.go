package models

// NoteModel is a flat per-user note with optional category reference.
// CategoryID is a weak reference validated at write time, not a foreign key:
// deleting a category nulls it rather than cascading.
type NoteModel struct {
	Base
	UserID     string      `json:"userId"     gorm:"index;not null"`
	Title      string      `json:"title"      gorm:"not null"`
	Content    string      `json:"content"    gorm:"type:longtext"`
	Tags       StringArray `json:"tags"       gorm:"type:longtext"`
	CategoryID *string     `json:"categoryId" gorm:"index"`
	IsPinned   bool        `json:"isPinned"   gorm:"default:false"`
}

func (NoteModel) TableName() string { return "notes" }
