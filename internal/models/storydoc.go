package models

// StoryDocKind distinguishes content-bearing documents from folders.
type StoryDocKind string

const (
	StoryDocKindDocument StoryDocKind = "document"
	StoryDocKindFolder   StoryDocKind = "folder"
)

// SaveReason tags a version snapshot with what triggered it.
type SaveReason string

const (
	SaveReasonManual   SaveReason = "manual"
	SaveReasonAutosave SaveReason = "autosave"
	SaveReasonRestore  SaveReason = "restore"
)

// StoryDocModel is a node in a project's document tree. ParentID points at a
// folder node or is nil for roots. SortOrder is only meaningful among siblings
// sharing the same parent; it is dense-enough, not contiguous.
type StoryDocModel struct {
	Base
	ProjectID string       `json:"projectId" gorm:"index;not null"`
	UserID    string       `json:"userId"    gorm:"index;not null"`
	ParentID  *string      `json:"parentId"  gorm:"index"`
	Title     string       `json:"title"     gorm:"not null"`
	Content   string       `json:"content"   gorm:"type:longtext"`
	Kind      StoryDocKind `json:"type"      gorm:"column:kind;default:document"`
	SortOrder int          `json:"order"     gorm:"column:sort_order;default:0"`
}

func (StoryDocModel) TableName() string { return "story_docs" }

// StoryDocVersionModel is an append-only pre-image snapshot of a document.
// Rows are created by the version ledger and never mutated or deleted.
type StoryDocVersionModel struct {
	Base
	DocID      string     `json:"docId"      gorm:"index;not null"`
	ProjectID  string     `json:"projectId"  gorm:"index;not null"`
	UserID     string     `json:"userId"     gorm:"index;not null"`
	Title      string     `json:"title"`
	Content    string     `json:"content"    gorm:"type:longtext"`
	SaveReason SaveReason `json:"saveReason" gorm:"default:manual"`
}

func (StoryDocVersionModel) TableName() string { return "story_doc_versions" }
