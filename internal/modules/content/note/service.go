package note

import (
	"errors"
	"strings"

	"github.com/inkwell/core/internal/models"
	"github.com/inkwell/core/internal/modules/content/category"
	"github.com/inkwell/core/internal/pkg/access"
	"gorm.io/gorm"
)

type Service struct {
	db         *gorm.DB
	categories *category.Service
}

func NewService(db *gorm.DB, categories *category.Service) *Service {
	return &Service{db: db, categories: categories}
}

func (s *Service) Create(userID string, dto *CreateNoteDTO) (*models.NoteModel, error) {
	categoryID, err := s.resolveCategory(userID, dto.Category, dto.CategoryID)
	if err != nil {
		return nil, err
	}
	n := models.NoteModel{
		UserID:     userID,
		Title:      dto.Title,
		Content:    dto.Content,
		Tags:       dto.Tags,
		CategoryID: categoryID,
		IsPinned:   dto.IsPinned,
	}
	if err := s.db.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Service) Get(userID, id string) (*models.NoteModel, error) {
	var n models.NoteModel
	err := s.db.Scopes(access.OwnedBy(userID)).Where("id = ?", id).First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNoteNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (s *Service) Update(userID, id string, dto *UpdateNoteDTO) (*models.NoteModel, error) {
	n, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.Tags != nil {
		updates["tags"] = models.StringArray(*dto.Tags)
	}
	if dto.IsPinned != nil {
		updates["is_pinned"] = *dto.IsPinned
	}
	if dto.Category != nil || dto.CategoryID != nil {
		if dto.CategoryID != nil && *dto.CategoryID == "" {
			updates["category_id"] = nil
		} else {
			var name string
			if dto.Category != nil {
				name = *dto.Category
			}
			categoryID, err := s.resolveCategory(userID, name, dto.CategoryID)
			if err != nil {
				return nil, err
			}
			updates["category_id"] = categoryID
		}
	}
	if len(updates) == 0 {
		return n, nil
	}
	if err := s.db.Model(n).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(userID, id)
}

func (s *Service) SetPinned(userID, id string, pinned bool) (*models.NoteModel, error) {
	n, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(n).Update("is_pinned", pinned).Error; err != nil {
		return nil, err
	}
	n.IsPinned = pinned
	return n, nil
}

func (s *Service) Delete(userID, id string) error {
	n, err := s.Get(userID, id)
	if err != nil {
		return err
	}
	return s.db.Delete(n).Error
}

// List returns all of the user's notes, pinned first, most recently touched
// within each group.
func (s *Service) List(userID string) ([]models.NoteModel, error) {
	var notes []models.NoteModel
	err := s.db.Scopes(access.OwnedBy(userID)).
		Order("is_pinned DESC, updated_at DESC").
		Find(&notes).Error
	return notes, err
}

// Search matches the query as a literal substring of title, content or tags.
func (s *Service) Search(userID, query string) ([]models.NoteModel, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(userID)
	}
	pattern := "%" + escapeLike(query) + "%"
	var notes []models.NoteModel
	err := s.db.Scopes(access.OwnedBy(userID)).
		Where("title LIKE ? ESCAPE '\\' OR content LIKE ? ESCAPE '\\' OR tags LIKE ? ESCAPE '\\'",
			pattern, pattern, pattern).
		Order("is_pinned DESC, updated_at DESC").
		Find(&notes).Error
	return notes, err
}

func (s *Service) resolveCategory(userID, name string, categoryID *string) (*string, error) {
	if name = strings.TrimSpace(name); name != "" {
		cat, err := s.categories.ResolveOrCreate(userID, name)
		if err != nil {
			return nil, err
		}
		return &cat.ID, nil
	}
	if categoryID == nil || *categoryID == "" {
		return nil, nil
	}
	ok, err := s.categories.CanAccess(userID, *categoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errCategoryInvalid
	}
	return categoryID, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
