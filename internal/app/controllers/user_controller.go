package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/app/services"
	"github.com/adeyemi/siwes-portal/internal/middleware"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/helpers"
)

// UserController handles user management operations
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// List handles the admin user listing
// @Summary List users
// @Description Returns a page of users, optionally filtered by role.
// @Tags admin
// @Produce json
// @Param role query string false "Role filter" Enums(ADMIN, STUDENT, SCHOOL_SUPERVISOR, INDUSTRY_SUPERVISOR)
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Users"
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Security BearerAuth
// @Router /admin/users [get]
func (c *UserController) List(ctx *gin.Context) {
	page, size := helpers.ParsePageParams(ctx)
	users, pagination, err := c.userService.List(ctx.Request.Context(), ctx.Query("role"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.NewUserResponse(u))
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{Items: items, Pagination: pagination}})
}

// ListStudents handles the admin student listing
// @Summary List students
// @Description Returns a page of student profiles with supervisor links.
// @Tags assignments
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Students"
// @Security BearerAuth
// @Router /supervisors/assignments [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	page, size := helpers.ParsePageParams(ctx)
	students, pagination, err := c.userService.ListStudents(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for _, sp := range students {
		items = append(items, dto.NewStudentResponse(sp))
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{Items: items, Pagination: pagination}})
}

// Get handles single-user lookup
// @Summary Get a user
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.userService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewUserResponse(user)})
}

// SetActive handles account enable/disable
// @Summary Enable or disable an account
// @Description Disabled accounts cannot log in or refresh tokens.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.SetActiveRequest true "Desired active state"
// @Success 200 {object} dto.APIResponse "Updated"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{id}/active [patch]
func (c *UserController) SetActive(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.userService.SetActive(ctx.Request.Context(), id, *req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", id).Bool("active", *req.IsActive).Msg("User active state changed")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"message": "Updated"}})
}

// ImportCSV handles bulk user creation
// @Summary Bulk-import users from CSV
// @Description Creates accounts from a CSV file (email,firstName,lastName,role,matricNumber,department). Each created account gets a temporary password returned in the response and must change it on first login.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.APIResponse{data=dto.CSVImportResponse} "Per-row results"
// @Failure 400 {object} dto.ErrorResponse "Missing file or bad header"
// @Security BearerAuth
// @Router /admin/users/upload-csv [post]
func (c *UserController) ImportCSV(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("a CSV file is required in the 'file' field"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("unreadable CSV file"))
		return
	}
	defer file.Close()

	resp, err := c.userService.ImportCSV(ctx.Request.Context(), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int("created", resp.Created).Int("failed", resp.Failed).Msg("Bulk user import completed")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Me handles profile retrieval for the caller
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile"
// @Security BearerAuth
// @Router /users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	user, err := c.userService.Get(ctx.Request.Context(), middleware.CallerID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewUserResponse(user)})
}

// UpdateMe handles profile updates for the caller
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated profile"
// @Security BearerAuth
// @Router /users/me [patch]
func (c *UserController) UpdateMe(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), middleware.CallerID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewUserResponse(user)})
}

// pathID parses a numeric path parameter.
func pathID(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperrors.NewBadRequestError("invalid " + name + " parameter")
	}
	return id, nil
}
