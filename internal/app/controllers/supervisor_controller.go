package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/app/services"
	"github.com/adeyemi/siwes-portal/internal/middleware"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
)

// SupervisorController lets students link their industry supervisor
type SupervisorController struct {
	supervisorService *services.SupervisorService
	logger            zerolog.Logger
}

// NewSupervisorController creates a new SupervisorController
func NewSupervisorController(supervisorService *services.SupervisorService, logger zerolog.Logger) *SupervisorController {
	return &SupervisorController{
		supervisorService: supervisorService,
		logger:            logger,
	}
}

// Status handles supervisor link status
// @Summary Check industry supervisor link status
// @Description Tells the calling student whether an industry supervisor is linked to them yet.
// @Tags industry-supervisors
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.IndustrySupervisorStatusResponse} "Link status"
// @Security BearerAuth
// @Router /industry-supervisors/status [get]
func (c *SupervisorController) Status(ctx *gin.Context) {
	resp, err := c.supervisorService.Status(ctx.Request.Context(), middleware.CallerID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Template handles CSV template download
// @Summary Download the supervisor CSV template
// @Tags industry-supervisors
// @Produce text/csv
// @Success 200 {string} string "CSV template"
// @Security BearerAuth
// @Router /industry-supervisors/export-template [get]
func (c *SupervisorController) Template(ctx *gin.Context) {
	ctx.Header("Content-Disposition", "attachment; filename=industry_supervisor.csv")
	ctx.Data(http.StatusOK, "text/csv", []byte(services.SupervisorCSVTemplate))
}

// UploadCSV handles supervisor linking via CSV
// @Summary Upload the filled supervisor CSV
// @Description Links the industry supervisor named in the CSV to the calling student. An unknown email gets a fresh account with a temporary password returned in the response.
// @Tags industry-supervisors
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Filled CSV"
// @Success 200 {object} dto.APIResponse{data=dto.SupervisorUploadResponse} "Supervisor linked"
// @Failure 409 {object} dto.ErrorResponse "Supervisor already linked or email belongs to a non-supervisor"
// @Security BearerAuth
// @Router /industry-supervisors/upload [post]
func (c *SupervisorController) UploadCSV(ctx *gin.Context) {
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

	resp, err := c.supervisorService.UploadCSV(ctx.Request.Context(), middleware.CallerID(ctx), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("supervisorID", resp.SupervisorID).Bool("created", resp.Created).Msg("Industry supervisor linked via CSV")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}
