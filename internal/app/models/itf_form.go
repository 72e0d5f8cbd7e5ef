package models

import "time"

// ITFForm defines admin-uploaded ITF document metadata based on the
// 'itf_forms' table.
type ITFForm struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	FileURL     string    `json:"fileUrl" db:"file_url"`
	UploadedBy  int64     `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
