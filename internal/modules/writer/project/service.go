package project

import (
	"errors"

	"github.com/inkwell/core/internal/models"
	"github.com/inkwell/core/internal/pkg/access"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Create(userID string, dto *CreateProjectDTO) (*models.ProjectModel, error) {
	p := models.ProjectModel{
		UserID:      userID,
		Title:       dto.Title,
		Type:        dto.Type,
		Description: dto.Description,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) List(userID string) ([]models.ProjectModel, error) {
	var projects []models.ProjectModel
	err := s.db.Scopes(access.OwnedBy(userID)).
		Order("updated_at DESC").Find(&projects).Error
	return projects, err
}

func (s *Service) Get(userID, id string) (*models.ProjectModel, error) {
	var p models.ProjectModel
	err := s.db.Scopes(access.OwnedBy(userID)).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) Update(userID, id string, dto *UpdateProjectDTO) (*models.ProjectModel, error) {
	p, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Type != nil {
		updates["type"] = *dto.Type
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if len(updates) == 0 {
		return p, nil
	}
	if err := s.db.Model(p).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(userID, id)
}

// Delete removes the project and everything hanging off it: documents, their
// version history, the writer singletons and attached sources.
func (s *Service) Delete(userID, id string) error {
	p, err := s.Get(userID, id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		scoped := func(m interface{}) error {
			return tx.Where("project_id = ? AND user_id = ?", id, userID).Delete(m).Error
		}
		for _, m := range []interface{}{
			&models.StoryDocVersionModel{},
			&models.StoryDocModel{},
			&models.StoryBibleModel{},
			&models.ProjectMemoryModel{},
			&models.WritingStyleModel{},
			&models.WritingSourceModel{},
		} {
			if err := scoped(m); err != nil {
				return err
			}
		}
		return tx.Delete(p).Error
	})
}

// GetBible returns the project's story bible, creating an empty one on first
// access.
func (s *Service) GetBible(userID, projectID string) (*models.StoryBibleModel, error) {
	if _, err := s.Get(userID, projectID); err != nil {
		return nil, err
	}
	var b models.StoryBibleModel
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Attrs(models.StoryBibleModel{ProjectID: projectID, UserID: userID}).
		FirstOrCreate(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Service) UpdateBible(userID, projectID string, dto *UpdateBibleDTO) (*models.StoryBibleModel, error) {
	b, err := s.GetBible(userID, projectID)
	if err != nil {
		return nil, err
	}
	if dto.Tone != nil {
		b.Tone = *dto.Tone
	}
	if dto.Rules != nil {
		b.Rules = *dto.Rules
	}
	if dto.Characters != nil {
		b.Characters = *dto.Characters
	}
	if dto.Locations != nil {
		b.Locations = *dto.Locations
	}
	if dto.Timeline != nil {
		b.Timeline = *dto.Timeline
	}
	if dto.Glossary != nil {
		b.Glossary = *dto.Glossary
	}
	if dto.Notes != nil {
		b.Notes = *dto.Notes
	}
	if err := s.db.Save(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) GetMemory(userID, projectID string) (*models.ProjectMemoryModel, error) {
	if _, err := s.Get(userID, projectID); err != nil {
		return nil, err
	}
	var m models.ProjectMemoryModel
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Attrs(models.ProjectMemoryModel{ProjectID: projectID, UserID: userID}).
		FirstOrCreate(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) UpdateMemory(userID, projectID string, dto *UpdateMemoryDTO) (*models.ProjectMemoryModel, error) {
	m, err := s.GetMemory(userID, projectID)
	if err != nil {
		return nil, err
	}
	if dto.StyleGuidelines != nil {
		m.StyleGuidelines = *dto.StyleGuidelines
	}
	if dto.OpenThreads != nil {
		m.OpenThreads = *dto.OpenThreads
	}
	if dto.KeyFacts != nil {
		m.KeyFacts = *dto.KeyFacts
	}
	if dto.SessionSummaries != nil {
		m.SessionSummaries = *dto.SessionSummaries
	}
	if dto.Progress != nil {
		m.Progress = *dto.Progress
	}
	if err := s.db.Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) GetStyle(userID, projectID string) (*models.WritingStyleModel, error) {
	if _, err := s.Get(userID, projectID); err != nil {
		return nil, err
	}
	var st models.WritingStyleModel
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Attrs(models.WritingStyleModel{ProjectID: projectID, UserID: userID}).
		FirstOrCreate(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Service) UpdateStyle(userID, projectID string, dto *UpdateStyleDTO) (*models.WritingStyleModel, error) {
	st, err := s.GetStyle(userID, projectID)
	if err != nil {
		return nil, err
	}
	if dto.Guidelines != nil {
		st.Guidelines = *dto.Guidelines
	}
	if dto.DoList != nil {
		st.DoList = models.StringArray(*dto.DoList)
	}
	if dto.DontList != nil {
		st.DontList = models.StringArray(*dto.DontList)
	}
	if dto.Examples != nil {
		st.Examples = models.StringArray(*dto.Examples)
	}
	if err := s.db.Save(st).Error; err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) ListSources(userID, projectID string) ([]models.WritingSourceModel, error) {
	if _, err := s.Get(userID, projectID); err != nil {
		return nil, err
	}
	var sources []models.WritingSourceModel
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Order("created_at DESC").Find(&sources).Error
	return sources, err
}

func (s *Service) CreateSource(userID, projectID string, dto *CreateSourceDTO) (*models.WritingSourceModel, error) {
	if _, err := s.Get(userID, projectID); err != nil {
		return nil, err
	}
	src := models.WritingSourceModel{
		ProjectID:   projectID,
		UserID:      userID,
		DocID:       dto.DocID,
		Type:        dto.Type,
		Title:       dto.Title,
		URL:         dto.URL,
		ContentText: dto.ContentText,
	}
	if err := s.db.Create(&src).Error; err != nil {
		return nil, err
	}
	return &src, nil
}

func (s *Service) DeleteSource(userID, projectID, sourceID string) error {
	if _, err := s.Get(userID, projectID); err != nil {
		return err
	}
	res := s.db.Where("id = ? AND project_id = ? AND user_id = ?", sourceID, projectID, userID).
		Delete(&models.WritingSourceModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errSourceNotFound
	}
	return nil
}
