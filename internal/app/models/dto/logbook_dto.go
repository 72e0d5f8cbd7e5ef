package dto

import "github.com/adeyemi/siwes-portal/internal/app/models"

// CreateLogbookEntryRequest creates a draft entry for one date.
type CreateLogbookEntryRequest struct {
	Date        string  `json:"date" binding:"required" example:"2024-03-01"`
	Description string  `json:"description" binding:"required"`
	ImageURL    *string `json:"imageUrl"`
}

// UpdateLogbookEntryRequest edits a draft entry.
type UpdateLogbookEntryRequest struct {
	Description string  `json:"description" binding:"required"`
	ImageURL    *string `json:"imageUrl"`
}

// ReviewLogbookEntryRequest carries optional reviewer feedback; the feedback
// travels in the resulting notification, not in the entry.
type ReviewLogbookEntryRequest struct {
	Feedback string `json:"feedback"`
}

// LogbookEntryResponse is one logbook entry on the wire.
type LogbookEntryResponse struct {
	ID          int64   `json:"id"`
	StudentID   int64   `json:"studentId"`
	Date        string  `json:"date" example:"2024-03-01"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Submitted   bool    `json:"submitted"`
}

// NewLogbookEntryResponse maps a logbook entry to its response shape.
func NewLogbookEntryResponse(entry *models.LogbookEntry) LogbookEntryResponse {
	return LogbookEntryResponse{
		ID:          entry.ID,
		StudentID:   entry.StudentID,
		Date:        entry.Date.Format("2006-01-02"),
		Description: entry.Description,
		ImageURL:    entry.ImageURL,
		Submitted:   entry.Submitted,
	}
}
