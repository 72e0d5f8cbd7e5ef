package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Controllers funnel
// every error through here so status codes stay consistent across endpoints.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// 401
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenBlacklisted):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenBlacklisted, "Token has been revoked")

	// 403
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled")
	case errors.Is(err, apperrors.ErrSignupClosed):
		respond(c, http.StatusForbidden, dto.ErrorCodeSignupClosed, "Signup is closed")
	case errors.Is(err, apperrors.ErrNotAssignedStudent):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Student is not assigned to you")
	case errors.Is(err, apperrors.ErrSystemNotification):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "System notifications cannot be modified")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	// 404
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrStudentNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found")
	case errors.Is(err, apperrors.ErrSupervisorNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Supervisor not found")
	case errors.Is(err, apperrors.ErrAttendanceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Attendance record not found")
	case errors.Is(err, apperrors.ErrLogbookEntryNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Logbook entry not found")
	case errors.Is(err, apperrors.ErrNotificationNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Notification not found")
	case errors.Is(err, apperrors.ErrITFFormNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "ITF form not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	// 409
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrMatricNumberExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Matric number already exists")
	case errors.Is(err, apperrors.ErrAttendanceExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Attendance already recorded for this date")
	case errors.Is(err, apperrors.ErrLogbookEntryExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Logbook entry already exists for this date")
	case errors.Is(err, apperrors.ErrAlreadySubmitted):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Logbook entry already submitted")
	case errors.Is(err, apperrors.ErrSupervisorAssigned):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Student already has a supervisor assigned")
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, messageOr(err, "Conflict"))

	// 400
	case errors.Is(err, apperrors.ErrNoSchoolSupervisors):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "No school supervisors available")
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageOr(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageOr(err, "Bad request"))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// HandleBindingError converts a gin binding failure into a 400 with
// field-level details.
func HandleBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// messageOr prefers a wrapped CustomError message over the generic fallback.
func messageOr(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
