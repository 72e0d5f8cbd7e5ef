package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/app/services"
	"github.com/adeyemi/siwes-portal/internal/middleware"
)

// AttendanceController handles attendance operations
type AttendanceController struct {
	attendanceService *services.AttendanceService
	logger            zerolog.Logger
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService, logger zerolog.Logger) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

// Mark handles attendance marking
// @Summary Mark attendance for a student
// @Description Records one attendance mark for a date. Only the industry supervisor assigned to the student may mark; a second mark for the same date is rejected.
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body dto.MarkAttendanceRequest true "Attendance mark"
// @Success 201 {object} dto.APIResponse{data=dto.MarkAttendanceResponse} "Record with refreshed stats"
// @Failure 403 {object} dto.ErrorResponse "Student is not assigned to you"
// @Failure 409 {object} dto.ErrorResponse "Attendance already recorded for this date"
// @Security BearerAuth
// @Router /attendance [post]
func (c *AttendanceController) Mark(ctx *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	rec, stats, err := c.attendanceService.Mark(ctx.Request.Context(), middleware.CallerID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("studentID", req.StudentID).Str("date", req.Date).Bool("present", rec.Present).Msg("Attendance marked")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.MarkAttendanceResponse{
		Attendance: dto.NewAttendanceResponse(rec),
		Stats:      stats,
	}})
}

// ListForStudent handles attendance retrieval
// @Summary List a student's attendance
// @Description Returns a student's records and aggregate stats. Students see their own, supervisors their assigned students, admins anyone.
// @Tags attendance
// @Produce json
// @Param studentId path int true "Student user ID"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceListResponse} "Records and stats"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to view this student"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Security BearerAuth
// @Router /attendance/{studentId} [get]
func (c *AttendanceController) ListForStudent(ctx *gin.Context) {
	studentID, err := pathID(ctx, "studentId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	records, stats, err := c.attendanceService.ListForStudent(ctx.Request.Context(), middleware.CallerID(ctx), middleware.CallerRole(ctx), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, dto.NewAttendanceResponse(rec))
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.AttendanceListResponse{Records: items, Stats: stats}})
}

// Update handles attendance corrections
// @Summary Update an attendance record
// @Description Edits the present flag and notes of an existing record. Only the industry supervisor assigned to the record's student may edit.
// @Tags attendance
// @Accept json
// @Produce json
// @Param attendanceId path int true "Attendance record ID"
// @Param request body dto.UpdateAttendanceRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.MarkAttendanceResponse} "Updated record with refreshed stats"
// @Failure 403 {object} dto.ErrorResponse "Student is not assigned to you"
// @Failure 404 {object} dto.ErrorResponse "Attendance record not found"
// @Security BearerAuth
// @Router /attendance/{attendanceId} [patch]
func (c *AttendanceController) Update(ctx *gin.Context) {
	id, err := pathID(ctx, "attendanceId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	rec, stats, err := c.attendanceService.Update(ctx.Request.Context(), middleware.CallerID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.MarkAttendanceResponse{
		Attendance: dto.NewAttendanceResponse(rec),
		Stats:      stats,
	}})
}
