package services

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/auth"
	"github.com/adeyemi/siwes-portal/internal/pkg/logger"
)

// SupervisorCSVTemplate is served to students so their placement company can
// fill in the industry supervisor's details.
const SupervisorCSVTemplate = "email,firstName,lastName,company\nsupervisor@company.com,Ada,Obi,Acme Systems Ltd\n"

// SupervisorService lets students link their placement's industry supervisor
type SupervisorService struct {
	users    UserStore
	students StudentStore
}

// NewSupervisorService creates a new SupervisorService
func NewSupervisorService(users UserStore, students StudentStore) *SupervisorService {
	return &SupervisorService{
		users:    users,
		students: students,
	}
}

// Status reports whether an industry supervisor is linked to the student yet.
func (s *SupervisorService) Status(ctx context.Context, studentID int64) (*dto.IndustrySupervisorStatusResponse, error) {
	student, err := s.students.GetByUserID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.IndustrySupervisorID == nil {
		return &dto.IndustrySupervisorStatusResponse{Linked: false}, nil
	}

	supervisor, err := s.users.GetUserByID(ctx, *student.IndustrySupervisorID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(supervisor)
	return &dto.IndustrySupervisorStatusResponse{Linked: true, Supervisor: &resp}, nil
}

// UploadCSV links the industry supervisor named in the student's uploaded
// CSV. An unknown email gets a fresh account with a temporary password; an
// existing industry supervisor account is linked as-is. The optional company
// column is stored on the student's profile. A student with a supervisor
// already linked gets a conflict.
func (s *SupervisorService) UploadCSV(ctx context.Context, studentID int64, r io.Reader) (*dto.SupervisorUploadResponse, error) {
	student, err := s.students.GetByUserID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.IndustrySupervisorID != nil {
		return nil, apperrors.ErrSupervisorAssigned
	}

	email, firstName, lastName, company, err := parseSupervisorCSV(r)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	resp := &dto.SupervisorUploadResponse{Email: email}
	if existing != nil {
		if existing.RoleType != models.RoleIndustrySupervisor {
			return nil, apperrors.NewConflictError("email belongs to a non-supervisor account")
		}
		resp.SupervisorID = existing.ID
	} else {
		tempPassword := auth.GenerateTemporaryPassword()
		hashed, err := auth.HashPassword(tempPassword)
		if err != nil {
			return nil, err
		}

		supervisor := &models.User{
			Email:              email,
			Password:           hashed,
			FirstName:          firstName,
			LastName:           lastName,
			RoleType:           models.RoleIndustrySupervisor,
			MustChangePassword: true,
			IsActive:           true,
		}
		if _, err := s.users.CreateUser(ctx, supervisor); err != nil {
			return nil, err
		}
		resp.SupervisorID = supervisor.ID
		resp.Created = true
		resp.TemporaryPassword = tempPassword
	}

	if err := s.students.SetIndustrySupervisor(ctx, studentID, resp.SupervisorID); err != nil {
		return nil, err
	}
	if company != "" {
		if err := s.students.SetCompanyName(ctx, studentID, company); err != nil {
			return nil, err
		}
		resp.Company = company
	}

	logger.Info().Int64("studentID", studentID).Int64("supervisorID", resp.SupervisorID).Bool("created", resp.Created).Msg("Industry supervisor linked")
	return resp, nil
}

func parseSupervisorCSV(r io.Reader) (email, firstName, lastName, company string, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return "", "", "", "", apperrors.NewBadRequestError("empty or unreadable CSV file")
	}
	if len(header) < 3 || !strings.EqualFold(strings.TrimSpace(header[0]), "email") {
		return "", "", "", "", apperrors.NewBadRequestError("CSV header must be: email,firstName,lastName,company")
	}

	record, err := reader.Read()
	if err != nil || len(record) < 3 {
		return "", "", "", "", apperrors.NewBadRequestError("CSV must contain one supervisor row")
	}

	email = strings.TrimSpace(record[0])
	firstName = strings.TrimSpace(record[1])
	lastName = strings.TrimSpace(record[2])
	if len(record) > 3 {
		company = strings.TrimSpace(record[3])
	}
	if email == "" || firstName == "" || lastName == "" {
		return "", "", "", "", apperrors.NewBadRequestError("email, firstName and lastName are required")
	}
	return email, firstName, lastName, company, nil
}
