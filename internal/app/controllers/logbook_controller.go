package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/app/services"
	"github.com/adeyemi/siwes-portal/internal/middleware"
	"github.com/adeyemi/siwes-portal/internal/pkg/filestorage"
)

// LogbookController handles logbook entry operations
type LogbookController struct {
	logbookService *services.LogbookService
	storage        *filestorage.LocalStorage
	logger         zerolog.Logger
}

// NewLogbookController creates a new LogbookController
func NewLogbookController(logbookService *services.LogbookService, storage *filestorage.LocalStorage, logger zerolog.Logger) *LogbookController {
	return &LogbookController{
		logbookService: logbookService,
		storage:        storage,
		logger:         logger,
	}
}

// Create handles draft entry creation
// @Summary Create a draft logbook entry
// @Description Adds a draft entry for one date. A second entry for the same date is rejected. An optional photo can be attached as multipart alongside the JSON fields.
// @Tags logbook
// @Accept json
// @Produce json
// @Param request body dto.CreateLogbookEntryRequest true "Entry fields"
// @Success 201 {object} dto.APIResponse{data=dto.LogbookEntryResponse} "Draft created"
// @Failure 409 {object} dto.ErrorResponse "Entry already exists for this date"
// @Security BearerAuth
// @Router /logbook [post]
func (c *LogbookController) Create(ctx *gin.Context) {
	var req dto.CreateLogbookEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	entry, err := c.logbookService.Create(ctx.Request.Context(), middleware.CallerID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("entryID", entry.ID).Str("date", req.Date).Msg("Logbook draft created")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.NewLogbookEntryResponse(entry)})
}

// UploadImage handles entry photo upload
// @Summary Upload a photo for a draft entry
// @Description Stores the photo and attaches its URL to the draft. Submitted entries cannot be changed.
// @Tags logbook
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Entry ID"
// @Param file formData file true "Photo"
// @Success 200 {object} dto.APIResponse{data=dto.LogbookEntryResponse} "Updated draft"
// @Failure 409 {object} dto.ErrorResponse "Entry already submitted"
// @Security BearerAuth
// @Router /logbook/{id}/image [post]
func (c *LogbookController) UploadImage(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	imageURL, err := c.storage.SaveFileWithPath(fileHeader, "logbook")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	entry, err := c.logbookService.AttachImage(ctx.Request.Context(), middleware.CallerID(ctx), id, imageURL)
	if err != nil {
		// The photo is orphaned if the update fails; remove it.
		_ = c.storage.DeleteFile(imageURL)
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewLogbookEntryResponse(entry)})
}

// ListForStudent handles logbook retrieval
// @Summary List a student's logbook entries
// @Description Students see their own entries, supervisors their assigned students, admins anyone.
// @Tags logbook
// @Produce json
// @Param studentId path int true "Student user ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.LogbookEntryResponse} "Entries"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to view this student"
// @Security BearerAuth
// @Router /logbook/students/{studentId} [get]
func (c *LogbookController) ListForStudent(ctx *gin.Context) {
	studentID, err := pathID(ctx, "studentId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	entries, err := c.logbookService.ListForStudent(ctx.Request.Context(), middleware.CallerID(ctx), middleware.CallerRole(ctx), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.LogbookEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewLogbookEntryResponse(entry))
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: items})
}

// Update handles draft edits
// @Summary Edit a draft entry
// @Description Edits the description and image of one of the caller's drafts. Submitted entries are immutable.
// @Tags logbook
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param request body dto.UpdateLogbookEntryRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.LogbookEntryResponse} "Updated draft"
// @Failure 409 {object} dto.ErrorResponse "Entry already submitted"
// @Security BearerAuth
// @Router /logbook/{id} [patch]
func (c *LogbookController) Update(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateLogbookEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	entry, err := c.logbookService.Update(ctx.Request.Context(), middleware.CallerID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewLogbookEntryResponse(entry)})
}

// Submit handles draft finalization
// @Summary Submit a draft entry
// @Description Marks the entry as submitted. Submission is terminal; submitting twice returns a conflict.
// @Tags logbook
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} dto.APIResponse{data=dto.LogbookEntryResponse} "Submitted entry"
// @Failure 409 {object} dto.ErrorResponse "Entry already submitted"
// @Security BearerAuth
// @Router /logbook/{id}/submit [post]
func (c *LogbookController) Submit(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	entry, err := c.logbookService.Submit(ctx.Request.Context(), middleware.CallerID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("entryID", id).Msg("Logbook entry submitted")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewLogbookEntryResponse(entry)})
}

// Review handles supervisor acknowledgement
// @Summary Review a submitted entry
// @Description Acknowledges a submitted entry. Optional feedback reaches the student as a system notification.
// @Tags logbook
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param request body dto.ReviewLogbookEntryRequest false "Optional feedback"
// @Success 200 {object} dto.APIResponse "Reviewed"
// @Failure 400 {object} dto.ErrorResponse "Entry not submitted yet"
// @Failure 403 {object} dto.ErrorResponse "Student is not assigned to you"
// @Security BearerAuth
// @Router /logbook/{id}/review [post]
func (c *LogbookController) Review(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ReviewLogbookEntryRequest
	_ = ctx.ShouldBindJSON(&req) // Feedback is optional

	err = c.logbookService.Review(ctx.Request.Context(), middleware.CallerID(ctx), middleware.CallerRole(ctx), id, req.Feedback)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("entryID", id).Msg("Logbook entry reviewed")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"message": "Reviewed"}})
}
