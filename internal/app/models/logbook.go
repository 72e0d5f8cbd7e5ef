package models

import "time"

// LogbookEntry defines a student's dated activity record based on the
// 'logbook_entries' table. Entries start as drafts and become terminal
// once submitted; at most one entry may exist per (student_id, date).
type LogbookEntry struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"studentId" db:"student_id"`
	Date        time.Time `json:"date" db:"date"`
	Description string    `json:"description" db:"description"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	Submitted   bool      `json:"submitted" db:"submitted"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
