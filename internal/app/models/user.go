package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID                 int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email              string     `json:"email" db:"email" example:"admin@siwes.edu.ng"`                           // User's email address
	Password           string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	FirstName          string     `json:"firstName" db:"first_name" example:"Adaeze"`                              // User's first name
	LastName           string     `json:"lastName" db:"last_name" example:"Okafor"`                                // User's last name
	RoleType           RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`                               // User's role
	MustChangePassword bool       `json:"mustChangePassword" db:"must_change_password" example:"false"`            // Forces a password change on next login
	IsActive           bool       `json:"isActive" db:"is_active" example:"true"`                                  // Whether the user account is active
	ImageURL           *string    `json:"imageUrl,omitempty" db:"image_url" example:"uploads/profile.jpg"`         // URL of the user's profile photo (nullable)
	LastLoginAt        *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
	CreatedAt          time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	UpdatedAt          time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
