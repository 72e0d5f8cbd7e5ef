package dto

import "github.com/adeyemi/siwes-portal/internal/app/models"

// UserResponse represents basic user information
type UserResponse struct {
	ID                 int64   `json:"id"`
	Email              string  `json:"email"`
	FirstName          string  `json:"firstName"`
	LastName           string  `json:"lastName"`
	RoleType           string  `json:"roleType"`
	MustChangePassword bool    `json:"mustChangePassword"`
	IsActive           bool    `json:"isActive"`
	ImageURL           *string `json:"imageUrl,omitempty"`
}

// NewUserResponse maps a user model to its response shape.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		RoleType:           string(u.RoleType),
		MustChangePassword: u.MustChangePassword,
		IsActive:           u.IsActive,
		ImageURL:           u.ImageURL,
	}
}

// UpdateProfileRequest represents profile update data for the caller.
type UpdateProfileRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	ImageURL  *string `json:"imageUrl"`
}

// SetActiveRequest toggles a user's active flag.
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// CSVImportRowResult reports the outcome of one CSV row.
type CSVImportRowResult struct {
	Line              int    `json:"line"`
	Email             string `json:"email,omitempty"`
	TemporaryPassword string `json:"temporaryPassword,omitempty"`
	Error             string `json:"error,omitempty"`
}

// CSVImportResponse summarizes a bulk user import. Temporary passwords are
// returned in the response body, matching the portal's established contract.
type CSVImportResponse struct {
	Created int                  `json:"created"`
	Failed  int                  `json:"failed"`
	Rows    []CSVImportRowResult `json:"rows"`
}

// StudentResponse represents a student with their profile.
type StudentResponse struct {
	UserResponse
	MatricNumber         string `json:"matricNumber"`
	Department           string `json:"department"`
	CompanyName          string `json:"companyName,omitempty"`
	Profile              string `json:"profile,omitempty"`
	IndustrySupervisorID *int64 `json:"industrySupervisorId,omitempty"`
	SchoolSupervisorID   *int64 `json:"schoolSupervisorId,omitempty"`
}

// NewStudentResponse maps a student profile (with its user loaded) to the
// response shape.
func NewStudentResponse(sp *models.StudentProfile) StudentResponse {
	resp := StudentResponse{
		MatricNumber:         sp.MatricNumber,
		Department:           sp.Department,
		CompanyName:          sp.CompanyName,
		Profile:              sp.Profile,
		IndustrySupervisorID: sp.IndustrySupervisorID,
		SchoolSupervisorID:   sp.SchoolSupervisorID,
	}
	if sp.User != nil {
		resp.UserResponse = NewUserResponse(sp.User)
	} else {
		resp.UserResponse = UserResponse{ID: sp.UserID}
	}
	return resp
}
