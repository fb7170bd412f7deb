package auth

import (
	"errors"
	"time"
)

type RegisterDTO struct {
	Fullname string `json:"fullname" binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Fullname  string    `json:"fullname"`
	Email     string    `json:"email"`
	CreatedOn time.Time `json:"createdOn"`
}

var (
	errEmailTaken         = errors.New("user already exists")
	errInvalidCredentials = errors.New("invalid credentials")
)
