package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenBlacklisted   = errors.New("token has been revoked")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrSignupClosed       = errors.New("signup is closed")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrMatricNumberExists  = errors.New("matric number already exists")
	ErrStudentNotFound     = errors.New("student not found")
	ErrSupervisorNotFound  = errors.New("supervisor not found")
	ErrNotAssignedStudent  = errors.New("student is not assigned to this supervisor")
	ErrSupervisorAssigned  = errors.New("student already has a supervisor assigned")
	ErrNoSchoolSupervisors = errors.New("no school supervisors available")
)

// Attendance errors
var (
	ErrAttendanceExists   = errors.New("attendance already recorded for this date")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// Logbook errors
var (
	ErrLogbookEntryExists   = errors.New("logbook entry already exists for this date")
	ErrLogbookEntryNotFound = errors.New("logbook entry not found")
	ErrAlreadySubmitted     = errors.New("logbook entry already submitted")
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrSystemNotification   = errors.New("system notifications cannot be modified")
)

// ITF form errors
var (
	ErrITFFormNotFound = errors.New("itf form not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewResourceNotFoundError creates a not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
