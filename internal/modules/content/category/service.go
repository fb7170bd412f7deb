package category

import (
	"errors"
	"strings"

	"github.com/inkwell/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultCatalog is seeded once at startup as shared global categories.
var defaultCatalog = []string{"Meeting", "To-do", "Personal reflection", "Brain dump", "Idea"}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// EnsureGlobalCatalog seeds the built-in categories. Safe to call on every
// boot: existing names are skipped and unique-index races are swallowed.
func (s *Service) EnsureGlobalCatalog() error {
	for _, name := range defaultCatalog {
		var count int64
		if err := s.db.Model(&models.CategoryModel{}).
			Where("scope = ? AND LOWER(name) = LOWER(?)", models.CategoryScopeGlobal, name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		cat := models.CategoryModel{Name: name, Scope: models.CategoryScopeGlobal}
		if err := s.db.Create(&cat).Error; err != nil {
			s.log.Warn("seed category skipped", zap.String("name", name), zap.Error(err))
		}
	}
	return nil
}

// List returns the global catalog plus the user's own categories. A user
// category whose name collides with a global one is shadowed by the global.
func (s *Service) List(userID string) ([]models.CategoryModel, error) {
	var globals []models.CategoryModel
	if err := s.db.Where("scope = ?", models.CategoryScopeGlobal).
		Order("name ASC").Find(&globals).Error; err != nil {
		return nil, err
	}
	var own []models.CategoryModel
	if err := s.db.Where("scope = ? AND user_id = ?", models.CategoryScopeUser, userID).
		Order("name ASC").Find(&own).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(globals))
	for _, g := range globals {
		seen[strings.ToLower(g.Name)] = struct{}{}
	}
	out := globals
	for _, c := range own {
		if _, dup := seen[strings.ToLower(c.Name)]; dup {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Service) Create(userID, name string) (*models.CategoryModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errNameTaken
	}
	global, err := s.findByNameCI(models.CategoryScopeGlobal, "", name)
	if err != nil {
		return nil, err
	}
	if global != nil {
		return nil, errNameReserved
	}
	existing, err := s.findByNameCI(models.CategoryScopeUser, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errNameTaken
	}
	cat := models.CategoryModel{Name: name, Scope: models.CategoryScopeUser, UserID: &userID}
	if err := s.db.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// ResolveOrCreate maps a free-form name to a visible category, preferring the
// global catalog, then the user's own set, creating a user category last.
func (s *Service) ResolveOrCreate(userID, name string) (*models.CategoryModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	global, err := s.findByNameCI(models.CategoryScopeGlobal, "", name)
	if err != nil {
		return nil, err
	}
	if global != nil {
		return global, nil
	}
	existing, err := s.findByNameCI(models.CategoryScopeUser, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	cat := models.CategoryModel{Name: name, Scope: models.CategoryScopeUser, UserID: &userID}
	if err := s.db.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *Service) Rename(userID, id, name string) (*models.CategoryModel, error) {
	name = strings.TrimSpace(name)
	cat, err := s.getOwned(userID, id)
	if err != nil {
		return nil, err
	}
	global, err := s.findByNameCI(models.CategoryScopeGlobal, "", name)
	if err != nil {
		return nil, err
	}
	if global != nil {
		return nil, errNameReserved
	}
	var count int64
	if err := s.db.Model(&models.CategoryModel{}).
		Where("scope = ? AND user_id = ? AND LOWER(name) = LOWER(?) AND id <> ?",
			models.CategoryScopeUser, userID, name, id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errNameTaken
	}
	if err := s.db.Model(cat).Update("name", name).Error; err != nil {
		return nil, err
	}
	cat.Name = name
	return cat, nil
}

// Delete removes a user category and detaches it from the owner's notes
// inside one transaction. Global categories cannot be deleted.
func (s *Service) Delete(userID, id string) error {
	cat, err := s.getOwned(userID, id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.NoteModel{}).
			Where("user_id = ? AND category_id = ?", userID, id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(cat).Error
	})
}

// CanAccess reports whether the category is global or owned by the user,
// resolved in a single query.
func (s *Service) CanAccess(userID, id string) (bool, error) {
	var count int64
	err := s.db.Model(&models.CategoryModel{}).
		Where("id = ? AND (scope = ? OR user_id = ?)", id, models.CategoryScopeGlobal, userID).
		Count(&count).Error
	return count > 0, err
}

// getOwned looks up a user-scoped category; globals are invisible here so
// callers cannot rename or delete the shared catalog.
func (s *Service) getOwned(userID, id string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	err := s.db.Where("id = ? AND scope = ? AND user_id = ?",
		id, models.CategoryScopeUser, userID).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCategoryNotFound
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Service) findByNameCI(scope models.CategoryScope, userID, name string) (*models.CategoryModel, error) {
	q := s.db.Where("scope = ? AND LOWER(name) = LOWER(?)", scope, name)
	if scope == models.CategoryScopeUser {
		q = q.Where("user_id = ?", userID)
	}
	var cat models.CategoryModel
	if err := q.First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}
