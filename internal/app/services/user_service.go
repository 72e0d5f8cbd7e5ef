package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/auth"
	"github.com/adeyemi/siwes-portal/internal/pkg/helpers"
	"github.com/adeyemi/siwes-portal/internal/pkg/logger"
)

// csvHeader is the expected column order for bulk user imports. The
// matricNumber and department columns apply to STUDENT rows only.
var csvHeader = []string{"email", "firstName", "lastName", "role", "matricNumber", "department"}

// UserService handles user management operations
type UserService struct {
	users    UserStore
	students StudentStore
}

// NewUserService creates a new UserService
func NewUserService(users UserStore, students StudentStore) *UserService {
	return &UserService{
		users:    users,
		students: students,
	}
}

// List returns a page of users, optionally filtered by role.
func (s *UserService) List(ctx context.Context, role string, page, size int) ([]*models.User, dto.PaginationInfo, error) {
	var roleFilter *models.RoleType
	if role != "" {
		if !models.ValidRole(role) {
			return nil, dto.PaginationInfo{}, apperrors.NewBadRequestError("unknown role: " + role)
		}
		r := models.RoleType(role)
		roleFilter = &r
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	users, total, err := s.users.ListUsers(ctx, roleFilter, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return users, helpers.NewPaginationInfo(total, page, limit), nil
}

// ListStudents returns a page of student profiles with supervisor links.
func (s *UserService) ListStudents(ctx context.Context, page, size int) ([]*models.StudentProfile, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	students, total, err := s.students.ListAll(ctx, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return students, helpers.NewPaginationInfo(total, page, limit), nil
}

// Get returns one user by id.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// GetStudent returns one student profile by the student's user id.
func (s *UserService) GetStudent(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	return s.students.GetByUserID(ctx, userID)
}

// SetActive enables or disables an account. Disabled accounts cannot log in
// or refresh.
func (s *UserService) SetActive(ctx context.Context, userID int64, active bool) error {
	return s.users.SetActive(ctx, userID, active)
}

// UpdateProfile updates the caller's own name and image.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*models.User, error) {
	if err := s.users.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.ImageURL); err != nil {
		return nil, err
	}
	return s.users.GetUserByID(ctx, userID)
}

// ImportCSV bulk-creates accounts from a CSV stream. Each row gets a
// temporary password returned in the response; the accounts are created with
// the must-change flag so the password is rotated on first login. Row
// failures do not abort the rest of the file.
func (s *UserService) ImportCSV(ctx context.Context, r io.Reader) (*dto.CSVImportResponse, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewBadRequestError("empty or unreadable CSV file")
	}
	if err := validateCSVHeader(header); err != nil {
		return nil, err
	}

	resp := &dto.CSVImportResponse{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			resp.Failed++
			resp.Rows = append(resp.Rows, dto.CSVImportRowResult{Line: line, Error: "malformed row"})
			continue
		}

		result := s.importRow(ctx, line, record)
		if result.Error != "" {
			resp.Failed++
		} else {
			resp.Created++
		}
		resp.Rows = append(resp.Rows, result)
	}

	logger.Info().Int("created", resp.Created).Int("failed", resp.Failed).Msg("CSV user import finished")
	return resp, nil
}

func validateCSVHeader(header []string) error {
	if len(header) < 4 {
		return apperrors.NewBadRequestError("CSV header must be: " + strings.Join(csvHeader, ","))
	}
	for i, want := range csvHeader[:4] {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return apperrors.NewBadRequestError("CSV header must be: " + strings.Join(csvHeader, ","))
		}
	}
	return nil
}

func (s *UserService) importRow(ctx context.Context, line int, record []string) dto.CSVImportRowResult {
	result := dto.CSVImportRowResult{Line: line}
	if len(record) < 4 {
		result.Error = "row must have at least email, firstName, lastName and role"
		return result
	}

	email := strings.TrimSpace(record[0])
	firstName := strings.TrimSpace(record[1])
	lastName := strings.TrimSpace(record[2])
	role := strings.ToUpper(strings.TrimSpace(record[3]))
	result.Email = email

	if email == "" || firstName == "" || lastName == "" {
		result.Error = "email, firstName and lastName are required"
		return result
	}
	if !models.ValidRole(role) {
		result.Error = "unknown role: " + role
		return result
	}

	var matricNumber, department string
	if len(record) > 4 {
		matricNumber = strings.TrimSpace(record[4])
	}
	if len(record) > 5 {
		department = strings.TrimSpace(record[5])
	}
	if models.RoleType(role) == models.RoleStudent && matricNumber == "" {
		result.Error = "matricNumber is required for STUDENT rows"
		return result
	}

	// Duplicates are reported before the account insert so a student row
	// never leaves a disabled half-created user behind.
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		result.Error = importErrorMessage(err)
		return result
	}
	if exists {
		result.Error = "email already exists"
		return result
	}
	if models.RoleType(role) == models.RoleStudent {
		taken, err := s.students.MatricNumberExists(ctx, matricNumber)
		if err != nil {
			result.Error = importErrorMessage(err)
			return result
		}
		if taken {
			result.Error = "matric number already exists"
			return result
		}
	}

	tempPassword := auth.GenerateTemporaryPassword()
	hashed, err := auth.HashPassword(tempPassword)
	if err != nil {
		result.Error = "failed to generate password"
		return result
	}

	user := &models.User{
		Email:              email,
		Password:           hashed,
		FirstName:          firstName,
		LastName:           lastName,
		RoleType:           models.RoleType(role),
		MustChangePassword: true,
		IsActive:           true,
	}
	if _, err := s.users.CreateUser(ctx, user); err != nil {
		result.Error = importErrorMessage(err)
		return result
	}

	if user.RoleType == models.RoleStudent {
		student := &models.StudentProfile{
			UserID:       user.ID,
			MatricNumber: matricNumber,
			Department:   department,
		}
		if err := s.students.CreateStudent(ctx, student); err != nil {
			// The account exists but is unusable without a profile; disable
			// it so the admin can retry with a fixed row.
			if disableErr := s.users.SetActive(ctx, user.ID, false); disableErr != nil {
				logger.Error().Err(disableErr).Int64("userID", user.ID).Msg("Failed to disable user after profile creation failure")
			}
			result.Error = importErrorMessage(err)
			return result
		}
	}

	result.TemporaryPassword = tempPassword
	return result
}

func importErrorMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return "email already exists"
	case errors.Is(err, apperrors.ErrMatricNumberExists):
		return "matric number already exists"
	default:
		return fmt.Sprintf("failed to create user: %v", err)
	}
}
