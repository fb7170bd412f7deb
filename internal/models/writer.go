package models

// Per-project writer singletons. Each is 1:1 with (project, owner), lazily
// created on first access; the unique index backs the upsert.

// StoryBibleModel holds the canon a project's prose must stay consistent with.
type StoryBibleModel struct {
	Base
	ProjectID  string        `json:"projectId"  gorm:"not null;uniqueIndex:idx_story_bibles_project_owner"`
	UserID     string        `json:"userId"     gorm:"not null;uniqueIndex:idx_story_bibles_project_owner"`
	Tone       string        `json:"tone"`
	Rules      string        `json:"rules"      gorm:"type:longtext"`
	Characters []interface{} `json:"characters" gorm:"type:longtext;serializer:json"`
	Locations  []interface{} `json:"locations"  gorm:"type:longtext;serializer:json"`
	Timeline   []interface{} `json:"timeline"   gorm:"type:longtext;serializer:json"`
	Glossary   []interface{} `json:"glossary"   gorm:"type:longtext;serializer:json"`
	Notes      string        `json:"notes"      gorm:"type:longtext"`
}

func (StoryBibleModel) TableName() string { return "story_bibles" }

// ProjectMemoryModel accumulates what the AI assistant should remember between
// sessions: open plot threads, established facts, rolling session summaries.
type ProjectMemoryModel struct {
	Base
	ProjectID        string                 `json:"projectId"        gorm:"not null;uniqueIndex:idx_project_memories_project_owner"`
	UserID           string                 `json:"userId"           gorm:"not null;uniqueIndex:idx_project_memories_project_owner"`
	StyleGuidelines  string                 `json:"styleGuidelines"  gorm:"type:longtext"`
	OpenThreads      []interface{}          `json:"openThreads"      gorm:"type:longtext;serializer:json"`
	KeyFacts         []interface{}          `json:"keyFacts"         gorm:"type:longtext;serializer:json"`
	SessionSummaries []SessionSummary       `json:"sessionSummaries" gorm:"type:longtext;serializer:json"`
	Progress         map[string]interface{} `json:"progress"         gorm:"type:longtext;serializer:json"`
}

func (ProjectMemoryModel) TableName() string { return "project_memories" }

// SessionSummary is one rolling entry of ProjectMemoryModel.SessionSummaries.
type SessionSummary struct {
	CreatedOn   string `json:"createdOn"`
	SummaryText string `json:"summaryText"`
}

// WritingStyleModel captures a project's prose style profile.
type WritingStyleModel struct {
	Base
	ProjectID  string      `json:"projectId"  gorm:"not null;uniqueIndex:idx_writing_styles_project_owner"`
	UserID     string      `json:"userId"     gorm:"not null;uniqueIndex:idx_writing_styles_project_owner"`
	Guidelines string      `json:"guidelines" gorm:"type:longtext"`
	DoList     StringArray `json:"doList"     gorm:"type:longtext"`
	DontList   StringArray `json:"dontList"   gorm:"type:longtext"`
	Examples   StringArray `json:"examples"   gorm:"type:longtext"`
}

func (WritingStyleModel) TableName() string { return "writing_styles" }

// WritingSourceModel is reference material attached to a project.
type WritingSourceModel struct {
	Base
	ProjectID   string  `json:"projectId"   gorm:"index;not null"`
	UserID      string  `json:"userId"      gorm:"index;not null"`
	DocID       *string `json:"docId"       gorm:"index"`
	Type        string  `json:"type"        gorm:"default:url"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	ContentText string  `json:"contentText" gorm:"type:longtext"`
}

func (WritingSourceModel) TableName() string { return "writing_sources" }
