package services

import (
	"context"
	"math"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/helpers"
)

// AttendanceService handles attendance marking and statistics
type AttendanceService struct {
	attendance AttendanceStore
	students   StudentStore
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(attendance AttendanceStore, students StudentStore) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		students:   students,
	}
}

// ComputeAttendanceStats aggregates a record list in memory. The rate is a
// percentage rounded to two decimals; zero records yield a zero rate.
func ComputeAttendanceStats(records []*models.AttendanceRecord) models.AttendanceStats {
	stats := models.AttendanceStats{TotalDays: len(records)}
	for _, rec := range records {
		if rec.Present {
			stats.PresentCount++
		} else {
			stats.AbsentCount++
		}
	}
	if stats.TotalDays > 0 {
		stats.Rate = math.Round(float64(stats.PresentCount)/float64(stats.TotalDays)*10000) / 100
	}
	return stats
}

// Mark records attendance for one of the caller's assigned students. Only
// the industry supervisor linked to the student may mark.
func (s *AttendanceService) Mark(ctx context.Context, supervisorID int64, req dto.MarkAttendanceRequest) (*models.AttendanceRecord, models.AttendanceStats, error) {
	student, err := s.students.GetByUserID(ctx, req.StudentID)
	if err != nil {
		return nil, models.AttendanceStats{}, err
	}
	if student.IndustrySupervisorID == nil || *student.IndustrySupervisorID != supervisorID {
		return nil, models.AttendanceStats{}, apperrors.ErrNotAssignedStudent
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return nil, models.AttendanceStats{}, apperrors.NewBadRequestError("date must be in YYYY-MM-DD format")
	}

	rec := &models.AttendanceRecord{
		StudentID:    req.StudentID,
		Date:         date,
		Present:      *req.Present,
		Notes:        req.Notes,
		SupervisorID: supervisorID,
	}
	if err := s.attendance.Create(ctx, rec); err != nil {
		return nil, models.AttendanceStats{}, err
	}

	records, err := s.attendance.ListByStudent(ctx, req.StudentID)
	if err != nil {
		return nil, models.AttendanceStats{}, err
	}
	return rec, ComputeAttendanceStats(records), nil
}

// ListForStudent returns a student's records and stats, enforcing who may
// see them: the student themselves, their supervisors, or an admin.
func (s *AttendanceService) ListForStudent(ctx context.Context, callerID int64, callerRole models.RoleType, studentID int64) ([]*models.AttendanceRecord, models.AttendanceStats, error) {
	if err := s.authorizeView(ctx, callerID, callerRole, studentID); err != nil {
		return nil, models.AttendanceStats{}, err
	}

	records, err := s.attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, models.AttendanceStats{}, err
	}
	return records, ComputeAttendanceStats(records), nil
}

// Update edits an existing record. Only the industry supervisor currently
// assigned to the record's student may edit it.
func (s *AttendanceService) Update(ctx context.Context, supervisorID, attendanceID int64, req dto.UpdateAttendanceRequest) (*models.AttendanceRecord, models.AttendanceStats, error) {
	rec, err := s.attendance.GetByID(ctx, attendanceID)
	if err != nil {
		return nil, models.AttendanceStats{}, err
	}

	student, err := s.students.GetByUserID(ctx, rec.StudentID)
	if err != nil {
		return nil, models.AttendanceStats{}, err
	}
	if student.IndustrySupervisorID == nil || *student.IndustrySupervisorID != supervisorID {
		return nil, models.AttendanceStats{}, apperrors.ErrNotAssignedStudent
	}

	if err := s.attendance.Update(ctx, attendanceID, *req.Present, req.Notes); err != nil {
		return nil, models.AttendanceStats{}, err
	}
	rec.Present = *req.Present
	rec.Notes = req.Notes

	records, err := s.attendance.ListByStudent(ctx, rec.StudentID)
	if err != nil {
		return nil, models.AttendanceStats{}, err
	}
	return rec, ComputeAttendanceStats(records), nil
}

func (s *AttendanceService) authorizeView(ctx context.Context, callerID int64, callerRole models.RoleType, studentID int64) error {
	switch callerRole {
	case models.RoleAdmin:
		return nil
	case models.RoleStudent:
		if callerID != studentID {
			return apperrors.ErrPermissionDenied
		}
		return nil
	case models.RoleIndustrySupervisor, models.RoleSchoolSupervisor:
		student, err := s.students.GetByUserID(ctx, studentID)
		if err != nil {
			return err
		}
		if callerRole == models.RoleIndustrySupervisor {
			if student.IndustrySupervisorID != nil && *student.IndustrySupervisorID == callerID {
				return nil
			}
		} else {
			if student.SchoolSupervisorID != nil && *student.SchoolSupervisorID == callerID {
				return nil
			}
		}
		return apperrors.ErrNotAssignedStudent
	}
	return apperrors.ErrPermissionDenied
}
