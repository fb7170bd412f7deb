package category

import "errors"

type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required"`
}

type UpdateCategoryDTO struct {
	Name string `json:"name" binding:"required"`
}

var (
	errCategoryNotFound = errors.New("category not found")
	errNameReserved     = errors.New("category name is reserved")
	errNameTaken        = errors.New("category already exists")
)
