package dto

import "github.com/adeyemi/siwes-portal/internal/app/models"

// MarkAttendanceRequest records one attendance mark for a student.
type MarkAttendanceRequest struct {
	StudentID int64   `json:"studentId" binding:"required,min=1"`
	Date      string  `json:"date" binding:"required" example:"2024-03-01"`
	Present   *bool   `json:"present" binding:"required"`
	Notes     *string `json:"notes"`
}

// UpdateAttendanceRequest updates an existing attendance record.
type UpdateAttendanceRequest struct {
	Present *bool   `json:"present" binding:"required"`
	Notes   *string `json:"notes"`
}

// AttendanceResponse is one attendance record on the wire.
type AttendanceResponse struct {
	ID           int64   `json:"id"`
	StudentID    int64   `json:"studentId"`
	Date         string  `json:"date" example:"2024-03-01"`
	Present      bool    `json:"present"`
	Notes        *string `json:"notes,omitempty"`
	SupervisorID int64   `json:"supervisorId"`
}

// NewAttendanceResponse maps an attendance record to its response shape.
func NewAttendanceResponse(rec *models.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:           rec.ID,
		StudentID:    rec.StudentID,
		Date:         rec.Date.Format("2006-01-02"),
		Present:      rec.Present,
		Notes:        rec.Notes,
		SupervisorID: rec.SupervisorID,
	}
}

// AttendanceListResponse bundles a student's records with their stats.
type AttendanceListResponse struct {
	Records []AttendanceResponse   `json:"records"`
	Stats   models.AttendanceStats `json:"stats"`
}

// MarkAttendanceResponse returns the created record plus refreshed stats.
type MarkAttendanceResponse struct {
	Attendance AttendanceResponse     `json:"attendance"`
	Stats      models.AttendanceStats `json:"stats"`
}
