package note

import "errors"

type CreateNoteDTO struct {
	Title      string   `json:"title" binding:"required"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	Category   string   `json:"category"`
	CategoryID *string  `json:"categoryId"`
	IsPinned   bool     `json:"isPinned"`
}

// UpdateNoteDTO carries a partial edit. Nil fields are left untouched; a
// present but empty categoryId detaches the note from its category.
type UpdateNoteDTO struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Tags       *[]string `json:"tags"`
	Category   *string   `json:"category"`
	CategoryID *string   `json:"categoryId"`
	IsPinned   *bool     `json:"isPinned"`
}

type PinNoteDTO struct {
	IsPinned bool `json:"isPinned"`
}

var (
	errNoteNotFound    = errors.New("note not found")
	errCategoryInvalid = errors.New("category not accessible")
)
