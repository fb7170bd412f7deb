package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/inkwell/core/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	email := strings.TrimSpace(dto.Email)

	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.UserModel{
		Fullname: strings.TrimSpace(dto.Fullname),
		Email:    email,
		Password: string(hash),
	}
	return &u, s.db.Create(&u).Error
}

// Login verifies credentials. Legacy rows that stored the password in plain
// text authenticate by equality and are rehashed with bcrypt on success.
func (s *Service) Login(email, password string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("email = ?", strings.TrimSpace(email)).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(time.Second)
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if isBcryptHash(u.Password) {
		if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
			time.Sleep(time.Second)
			return nil, errInvalidCredentials
		}
		return &u, nil
	}

	if u.Password != password {
		time.Sleep(time.Second)
		return nil, errInvalidCredentials
	}
	if hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); err == nil {
		// Upgrade the legacy row; login already succeeded, so a failure here
		// is logged by gorm and otherwise ignored.
		_ = s.db.Model(&u).Update("password", string(hash)).Error
		u.Password = string(hash)
	}
	return &u, nil
}

func (s *Service) GetByID(id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
