package doc

import (
	"errors"
	"time"

	"github.com/inkwell/core/internal/models"
	"github.com/inkwell/core/internal/modules/writer/project"
	"github.com/inkwell/core/internal/pkg/access"
	"gorm.io/gorm"
)

// autosaveCooldown is the minimum gap between two autosave snapshots of the
// same document. Manual saves and restores are never throttled.
const autosaveCooldown = 2 * time.Minute

// versionListLimit caps how much history one document exposes.
const versionListLimit = 30

type Service struct {
	db       *gorm.DB
	projects *project.Service
}

func NewService(db *gorm.DB, projects *project.Service) *Service {
	return &Service{db: db, projects: projects}
}

func (s *Service) Create(userID string, dto *CreateDocDTO) (*models.StoryDocModel, error) {
	if _, err := s.projects.Get(userID, dto.ProjectID); err != nil {
		return nil, err
	}
	if dto.ParentID != nil && *dto.ParentID != "" {
		if err := s.checkParent(userID, dto.ProjectID, *dto.ParentID); err != nil {
			return nil, err
		}
	} else {
		dto.ParentID = nil
	}

	kind := dto.Kind
	if kind == "" {
		kind = models.StoryDocKindDocument
	}
	order, err := s.nextSiblingOrder(userID, dto.ProjectID, dto.ParentID)
	if err != nil {
		return nil, err
	}
	d := models.StoryDocModel{
		ProjectID: dto.ProjectID,
		UserID:    userID,
		ParentID:  dto.ParentID,
		Title:     dto.Title,
		Content:   dto.Content,
		Kind:      kind,
		SortOrder: order,
	}
	if err := s.db.Create(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Service) Get(userID, id string) (*models.StoryDocModel, error) {
	var d models.StoryDocModel
	err := s.db.Scopes(access.OwnedBy(userID)).Where("id = ?", id).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errDocNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List returns every node of a project as a flat slice ordered by parent and
// sibling position; callers assemble the tree.
func (s *Service) List(userID, projectID string) ([]models.StoryDocModel, error) {
	if _, err := s.projects.Get(userID, projectID); err != nil {
		return nil, err
	}
	var docs []models.StoryDocModel
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Order("parent_id ASC, sort_order ASC, created_at ASC").
		Find(&docs).Error
	return docs, err
}

// Update applies a partial edit. When a document's content changes, the
// pre-edit state is snapshotted first under the requested save reason.
func (s *Service) Update(userID, id string, dto *UpdateDocDTO) (*models.StoryDocModel, error) {
	d, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil && *dto.Title != d.Title {
		updates["title"] = *dto.Title
	}
	if dto.Content != nil && *dto.Content != d.Content {
		updates["content"] = *dto.Content
	}
	if dto.SortOrder != nil {
		updates["sort_order"] = *dto.SortOrder
	}
	if dto.ParentID != nil {
		if *dto.ParentID == "" {
			updates["parent_id"] = nil
		} else {
			if err := s.checkParent(userID, d.ProjectID, *dto.ParentID); err != nil {
				return nil, err
			}
			if err := s.checkCycle(userID, d.ID, *dto.ParentID); err != nil {
				return nil, err
			}
			updates["parent_id"] = *dto.ParentID
		}
	}
	if len(updates) == 0 {
		return d, nil
	}

	reason := dto.SaveReason
	if reason == "" {
		reason = models.SaveReasonManual
	}
	_, hasContent := updates["content"]
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if hasContent && d.Kind == models.StoryDocKindDocument {
			if err := s.snapshot(tx, d, reason); err != nil {
				return err
			}
		}
		return tx.Model(d).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID, id)
}

// Delete removes the node and its direct children. Grandchildren survive as
// orphans; the flat listing still returns them.
func (s *Service) Delete(userID, id string) error {
	d, err := s.Get(userID, id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND parent_id = ?", userID, id).
			Delete(&models.StoryDocModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(d).Error
	})
}

// ListVersions returns the newest snapshots of a document, capped.
func (s *Service) ListVersions(userID, docID string) ([]models.StoryDocVersionModel, error) {
	if _, err := s.Get(userID, docID); err != nil {
		return nil, err
	}
	var versions []models.StoryDocVersionModel
	err := s.db.Where("doc_id = ? AND user_id = ?", docID, userID).
		Order("created_at DESC").Limit(versionListLimit).
		Find(&versions).Error
	return versions, err
}

// Restore rewinds a document to a snapshot. The pre-restore state is always
// snapshotted first so the operation itself can be undone.
func (s *Service) Restore(userID, docID, versionID string) (*models.StoryDocModel, error) {
	d, err := s.Get(userID, docID)
	if err != nil {
		return nil, err
	}
	var v models.StoryDocVersionModel
	err = s.db.Where("id = ? AND doc_id = ? AND user_id = ?", versionID, docID, userID).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errVersionNotFound
		}
		return nil, err
	}

	title := v.Title
	if title == "" {
		title = d.Title
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.snapshot(tx, d, models.SaveReasonRestore); err != nil {
			return err
		}
		return tx.Model(d).Updates(map[string]interface{}{
			"title":   title,
			"content": v.Content,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID, docID)
}

// snapshot appends a pre-image version row. Autosaves are dropped while a
// snapshot younger than the cooldown exists.
func (s *Service) snapshot(tx *gorm.DB, d *models.StoryDocModel, reason models.SaveReason) error {
	if reason == models.SaveReasonAutosave {
		var last models.StoryDocVersionModel
		err := tx.Where("doc_id = ?", d.ID).Order("created_at DESC").First(&last).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil && time.Since(last.CreatedAt) < autosaveCooldown {
			return nil
		}
	}
	v := models.StoryDocVersionModel{
		DocID:      d.ID,
		ProjectID:  d.ProjectID,
		UserID:     d.UserID,
		Title:      d.Title,
		Content:    d.Content,
		SaveReason: reason,
	}
	return tx.Create(&v).Error
}

func (s *Service) checkParent(userID, projectID, parentID string) error {
	var parent models.StoryDocModel
	err := s.db.Where("id = ? AND project_id = ? AND user_id = ?", parentID, projectID, userID).
		First(&parent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errParentInvalid
		}
		return err
	}
	if parent.Kind != models.StoryDocKindFolder {
		return errParentInvalid
	}
	return nil
}

// checkCycle walks the ancestor chain of the candidate parent and rejects it
// when the doc being moved appears in it. Accepting such a parent would loop
// the tree.
func (s *Service) checkCycle(userID, docID, parentID string) error {
	cur := parentID
	for cur != "" {
		if cur == docID {
			return errParentInvalid
		}
		var node models.StoryDocModel
		err := s.db.Select("id", "parent_id").
			Where("id = ? AND user_id = ?", cur, userID).
			First(&node).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if node.ParentID == nil {
			return nil
		}
		cur = *node.ParentID
	}
	return nil
}

func (s *Service) nextSiblingOrder(userID, projectID string, parentID *string) (int, error) {
	q := s.db.Model(&models.StoryDocModel{}).
		Where("project_id = ? AND user_id = ?", projectID, userID)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	var max *int
	if err := q.Select("MAX(sort_order)").Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}
