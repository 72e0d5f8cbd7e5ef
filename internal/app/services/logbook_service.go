package services

import (
	"context"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/helpers"
)

// Notifier delivers a system notification to one user. Implemented by
// NotificationService.
type Notifier interface {
	CreateSystem(ctx context.Context, userID int64, title, body string) error
}

// LogbookService handles logbook entry operations
type LogbookService struct {
	logbook  LogbookStore
	students StudentStore
	notifier Notifier
}

// NewLogbookService creates a new LogbookService
func NewLogbookService(logbook LogbookStore, students StudentStore, notifier Notifier) *LogbookService {
	return &LogbookService{
		logbook:  logbook,
		students: students,
		notifier: notifier,
	}
}

// Create adds a draft entry for the calling student.
func (s *LogbookService) Create(ctx context.Context, studentID int64, req dto.CreateLogbookEntryRequest) (*models.LogbookEntry, error) {
	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequestError("date must be in YYYY-MM-DD format")
	}

	entry := &models.LogbookEntry{
		StudentID:   studentID,
		Date:        date,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := s.logbook.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListForStudent returns a student's entries. Students see their own,
// supervisors see assigned students, admins see all.
func (s *LogbookService) ListForStudent(ctx context.Context, callerID int64, callerRole models.RoleType, studentID int64) ([]*models.LogbookEntry, error) {
	if err := s.authorizeView(ctx, callerID, callerRole, studentID); err != nil {
		return nil, err
	}
	return s.logbook.ListByStudent(ctx, studentID)
}

// Update edits one of the caller's draft entries. Submitted entries are
// immutable.
func (s *LogbookService) Update(ctx context.Context, studentID, entryID int64, req dto.UpdateLogbookEntryRequest) (*models.LogbookEntry, error) {
	entry, err := s.logbook.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.StudentID != studentID {
		return nil, apperrors.ErrPermissionDenied
	}
	if entry.Submitted {
		return nil, apperrors.ErrAlreadySubmitted
	}

	if err := s.logbook.Update(ctx, entryID, req.Description, req.ImageURL); err != nil {
		return nil, err
	}
	entry.Description = req.Description
	if req.ImageURL != nil {
		entry.ImageURL = req.ImageURL
	}
	return entry, nil
}

// AttachImage sets the photo URL on one of the caller's draft entries,
// leaving the description alone.
func (s *LogbookService) AttachImage(ctx context.Context, studentID, entryID int64, imageURL string) (*models.LogbookEntry, error) {
	entry, err := s.logbook.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.StudentID != studentID {
		return nil, apperrors.ErrPermissionDenied
	}
	if entry.Submitted {
		return nil, apperrors.ErrAlreadySubmitted
	}

	if err := s.logbook.Update(ctx, entryID, entry.Description, &imageURL); err != nil {
		return nil, err
	}
	entry.ImageURL = &imageURL
	return entry, nil
}

// Submit finalizes one of the caller's draft entries. Submitting twice
// returns a conflict.
func (s *LogbookService) Submit(ctx context.Context, studentID, entryID int64) (*models.LogbookEntry, error) {
	entry, err := s.logbook.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.StudentID != studentID {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.logbook.MarkSubmitted(ctx, entryID); err != nil {
		return nil, err
	}
	entry.Submitted = true
	return entry, nil
}

// Review lets the student's school supervisor acknowledge a submitted entry.
// The feedback reaches the student as a system notification rather than a
// field on the entry.
func (s *LogbookService) Review(ctx context.Context, reviewerID int64, reviewerRole models.RoleType, entryID int64, feedback string) error {
	entry, err := s.logbook.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if !entry.Submitted {
		return apperrors.NewBadRequestError("logbook entry has not been submitted")
	}

	student, err := s.students.GetByUserID(ctx, entry.StudentID)
	if err != nil {
		return err
	}
	if reviewerRole != models.RoleAdmin {
		if student.SchoolSupervisorID == nil || *student.SchoolSupervisorID != reviewerID {
			return apperrors.ErrNotAssignedStudent
		}
	}

	body := "Your logbook entry for " + helpers.FormatDate(entry.Date) + " has been reviewed."
	if feedback != "" {
		body += " Feedback: " + feedback
	}
	return s.notifier.CreateSystem(ctx, entry.StudentID, "Logbook entry reviewed", body)
}

func (s *LogbookService) authorizeView(ctx context.Context, callerID int64, callerRole models.RoleType, studentID int64) error {
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
