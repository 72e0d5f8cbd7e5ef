package models

import "time"

// AttendanceRecord defines one attendance mark based on the
// 'attendance_records' table. At most one record may exist per
// (student_id, date) pair, enforced by a unique composite key.
type AttendanceRecord struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	Date         time.Time `json:"date" db:"date"`
	Present      bool      `json:"present" db:"present"`
	Notes        *string   `json:"notes,omitempty" db:"notes"`
	SupervisorID int64     `json:"supervisorId" db:"supervisor_id"` // The industry supervisor who marked it
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// AttendanceStats holds aggregate statistics for one student, recomputed
// from the record list rather than a SQL aggregate.
type AttendanceStats struct {
	TotalDays    int     `json:"totalDays" example:"20"`
	PresentCount int     `json:"presentCount" example:"18"`
	AbsentCount  int     `json:"absentCount" example:"2"`
	Rate         float64 `json:"rate" example:"90"` // Percentage of days present
}
