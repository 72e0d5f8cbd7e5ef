package models

// StudentProfile defines the student model based on the 'students' table.
// It is a one-to-one extension of a User with role STUDENT; the API refers
// to students by their user id.
type StudentProfile struct {
	ID                   int64  `json:"id" db:"id"`
	UserID               int64  `json:"userId" db:"user_id"`
	MatricNumber         string `json:"matricNumber" db:"matric_number" example:"CSC/2021/001"`
	Department           string `json:"department" db:"department" example:"Computer Science"`
	CompanyName          string `json:"companyName,omitempty" db:"company_name" example:"Acme Systems Ltd"`
	Profile              string `json:"profile" db:"profile"` // Free-text placement/profile notes
	IndustrySupervisorID *int64 `json:"industrySupervisorId,omitempty" db:"industry_supervisor_id"`
	SchoolSupervisorID   *int64 `json:"schoolSupervisorId,omitempty" db:"school_supervisor_id"`
	User                 *User  `json:"user,omitempty"` // Relation, no db tag
}
