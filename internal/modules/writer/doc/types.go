package doc

import (
	"errors"

	"github.com/inkwell/core/internal/models"
)

type CreateDocDTO struct {
	ProjectID string              `json:"projectId" binding:"required"`
	ParentID  *string             `json:"parentId"`
	Title     string              `json:"title" binding:"required"`
	Content   string              `json:"content"`
	Kind      models.StoryDocKind `json:"type"`
}

// UpdateDocDTO is a partial edit. ParentID set to the empty string moves the
// node to the tree root. SaveReason selects the ledger policy for content
// edits and defaults to manual.
type UpdateDocDTO struct {
	Title      *string           `json:"title"`
	Content    *string           `json:"content"`
	ParentID   *string           `json:"parentId"`
	SortOrder  *int              `json:"order"`
	SaveReason models.SaveReason `json:"saveReason"`
}

type RestoreDTO struct {
	VersionID string `json:"versionId" binding:"required"`
}

var (
	errDocNotFound     = errors.New("document not found")
	errVersionNotFound = errors.New("version not found")
	errParentInvalid   = errors.New("parent must be a folder in the same project")
)
