package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/app/services"
	"github.com/adeyemi/siwes-portal/internal/middleware"
)

// AssignmentController handles supervisor assignment operations
type AssignmentController struct {
	assignmentService *services.AssignmentService
	logger            zerolog.Logger
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService *services.AssignmentService, logger zerolog.Logger) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// AssignIndustry handles industry supervisor assignment
// @Summary Assign an industry supervisor to a student
// @Description Links the supervisor to the student. A student with a supervisor already linked gets a conflict.
// @Tags assignments
// @Accept json
// @Produce json
// @Param request body dto.AssignSupervisorRequest true "Student and supervisor IDs"
// @Success 200 {object} dto.APIResponse "Assigned"
// @Failure 404 {object} dto.ErrorResponse "Student or supervisor not found"
// @Failure 409 {object} dto.ErrorResponse "Student already has a supervisor assigned"
// @Security BearerAuth
// @Router /supervisors/assignments/industry [post]
func (c *AssignmentController) AssignIndustry(ctx *gin.Context) {
	var req dto.AssignSupervisorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.assignmentService.AssignIndustrySupervisor(ctx.Request.Context(), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("studentID", req.StudentID).Int64("supervisorID", req.SupervisorID).Msg("Industry supervisor assigned")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"message": "Assigned"}})
}

// AssignSchool handles school supervisor assignment
// @Summary Assign a school supervisor to a student
// @Tags assignments
// @Accept json
// @Produce json
// @Param request body dto.AssignSupervisorRequest true "Student and supervisor IDs"
// @Success 200 {object} dto.APIResponse "Assigned"
// @Failure 404 {object} dto.ErrorResponse "Student or supervisor not found"
// @Failure 409 {object} dto.ErrorResponse "Student already has a supervisor assigned"
// @Security BearerAuth
// @Router /supervisors/assignments/school [post]
func (c *AssignmentController) AssignSchool(ctx *gin.Context) {
	var req dto.AssignSupervisorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.assignmentService.AssignSchoolSupervisor(ctx.Request.Context(), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("studentID", req.StudentID).Int64("supervisorID", req.SupervisorID).Msg("School supervisor assigned")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"message": "Assigned"}})
}

// RandomAssign handles balanced school supervisor distribution
// @Summary Distribute unassigned students across school supervisors
// @Description Shuffles unassigned students with a reproducible seed and hands each to the least loaded supervisor, keeping final loads within one of each other. The seed used is returned so the run can be replayed.
// @Tags assignments
// @Accept json
// @Produce json
// @Param request body dto.RandomAssignRequest false "Optional department filter and seed"
// @Success 200 {object} dto.APIResponse{data=dto.RandomAssignResponse} "Assignment summary"
// @Failure 400 {object} dto.ErrorResponse "No school supervisors available"
// @Security BearerAuth
// @Router /supervisors/assignments/school/random [post]
func (c *AssignmentController) RandomAssign(ctx *gin.Context) {
	var req dto.RandomAssignRequest
	_ = ctx.ShouldBindJSON(&req) // All fields optional

	resp, err := c.assignmentService.RandomAssign(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int("assigned", resp.Assigned).Int64("seed", resp.Seed).Msg("Random assignment run")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// MyStudents handles assigned student listing for supervisors
// @Summary List the caller's assigned students
// @Tags assignments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse} "Assigned students"
// @Failure 403 {object} dto.ErrorResponse "Supervisors only"
// @Security BearerAuth
// @Router /attendance/supervisor/students [get]
func (c *AssignmentController) MyStudents(ctx *gin.Context) {
	students, err := c.assignmentService.ListAssignedStudents(ctx.Request.Context(), middleware.CallerID(ctx), middleware.CallerRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for _, sp := range students {
		items = append(items, dto.NewStudentResponse(sp))
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: items})
}
