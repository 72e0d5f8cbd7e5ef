package dto

import (
	"time"

	"github.com/adeyemi/siwes-portal/internal/app/models"
)

// ITFFormResponse is one ITF form document on the wire.
type ITFFormResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	FileURL     string    `json:"fileUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewITFFormResponse maps an ITF form to its response shape.
func NewITFFormResponse(form *models.ITFForm) ITFFormResponse {
	return ITFFormResponse{
		ID:          form.ID,
		Title:       form.Title,
		Description: form.Description,
		FileURL:     form.FileURL,
		CreatedAt:   form.CreatedAt,
	}
}
