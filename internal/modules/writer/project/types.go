package project

import (
	"errors"

	"github.com/inkwell/core/internal/models"
)

type CreateProjectDTO struct {
	Title       string `json:"title" binding:"required"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type UpdateProjectDTO struct {
	Title       *string `json:"title"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
}

// UpdateBibleDTO carries only the canon fields the client sent. Absent
// fields keep their stored value.
type UpdateBibleDTO struct {
	Tone       *string        `json:"tone"`
	Rules      *string        `json:"rules"`
	Characters *[]interface{} `json:"characters"`
	Locations  *[]interface{} `json:"locations"`
	Timeline   *[]interface{} `json:"timeline"`
	Glossary   *[]interface{} `json:"glossary"`
	Notes      *string        `json:"notes"`
}

type UpdateMemoryDTO struct {
	StyleGuidelines  *string                  `json:"styleGuidelines"`
	OpenThreads      *[]interface{}           `json:"openThreads"`
	KeyFacts         *[]interface{}           `json:"keyFacts"`
	SessionSummaries *[]models.SessionSummary `json:"sessionSummaries"`
	Progress         *map[string]interface{}  `json:"progress"`
}

type UpdateStyleDTO struct {
	Guidelines *string   `json:"guidelines"`
	DoList     *[]string `json:"doList"`
	DontList   *[]string `json:"dontList"`
	Examples   *[]string `json:"examples"`
}

type CreateSourceDTO struct {
	DocID       *string `json:"docId"`
	Type        string  `json:"type"`
	Title       string  `json:"title" binding:"required"`
	URL         string  `json:"url"`
	ContentText string  `json:"contentText"`
}

var (
	ErrNotFound       = errors.New("project not found")
	errSourceNotFound = errors.New("source not found")
)
