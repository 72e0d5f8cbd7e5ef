package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/app/services"
	"github.com/adeyemi/siwes-portal/internal/middleware"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/filestorage"
)

// ITFFormController handles ITF form document operations
type ITFFormController struct {
	itfFormService *services.ITFFormService
	storage        *filestorage.LocalStorage
	logger         zerolog.Logger
}

// NewITFFormController creates a new ITFFormController
func NewITFFormController(itfFormService *services.ITFFormService, storage *filestorage.LocalStorage, logger zerolog.Logger) *ITFFormController {
	return &ITFFormController{
		itfFormService: itfFormService,
		storage:        storage,
		logger:         logger,
	}
}

// Upload handles ITF form upload
// @Summary Upload an ITF form document
// @Tags itf-forms
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Document title"
// @Param description formData string false "Description"
// @Param file formData file true "Document file"
// @Success 201 {object} dto.APIResponse{data=dto.ITFFormResponse} "Uploaded"
// @Failure 400 {object} dto.ErrorResponse "Missing title or file"
// @Security BearerAuth
// @Router /itf-forms [post]
func (c *ITFFormController) Upload(ctx *gin.Context) {
	title := ctx.PostForm("title")
	if title == "" {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("title is required"))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("a document file is required in the 'file' field"))
		return
	}

	fileURL, err := c.storage.SaveFileWithPath(fileHeader, "itf-forms")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	form, err := c.itfFormService.Create(ctx.Request.Context(), middleware.CallerID(ctx), title, ctx.PostForm("description"), fileURL)
	if err != nil {
		_ = c.storage.DeleteFile(fileURL)
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("formID", form.ID).Str("title", title).Msg("ITF form uploaded")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.NewITFFormResponse(form)})
}

// List handles form listing
// @Summary List ITF form documents
// @Tags itf-forms
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ITFFormResponse} "Documents"
// @Security BearerAuth
// @Router /itf-forms [get]
func (c *ITFFormController) List(ctx *gin.Context) {
	forms, err := c.itfFormService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.ITFFormResponse, 0, len(forms))
	for _, form := range forms {
		items = append(items, dto.NewITFFormResponse(form))
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: items})
}

// Download handles form file download
// @Summary Download an ITF form document
// @Tags itf-forms
// @Produce octet-stream
// @Param id path int true "Form ID"
// @Success 200 {file} binary "The document"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Security BearerAuth
// @Router /itf-forms/{id}/download [get]
func (c *ITFFormController) Download(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	form, err := c.itfFormService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	path := c.storage.FullPath(form.FileURL)
	if path == "" {
		middleware.HandleAPIError(ctx, apperrors.ErrITFFormNotFound)
		return
	}
	ctx.FileAttachment(path, form.Title)
}

// Delete handles form removal
// @Summary Delete an ITF form document
// @Tags itf-forms
// @Produce json
// @Param id path int true "Form ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Security BearerAuth
// @Router /itf-forms/{id} [delete]
func (c *ITFFormController) Delete(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.itfFormService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("formID", id).Msg("ITF form deleted")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"message": "Deleted"}})
}
