package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/app/services"
	"github.com/adeyemi/siwes-portal/internal/middleware"
	"github.com/adeyemi/siwes-portal/internal/pkg/helpers"
)

// NotificationController handles notification operations
type NotificationController struct {
	notificationService *services.NotificationService
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		logger:              logger,
	}
}

// Create handles notification creation
// @Summary Create and fan out a notification
// @Description Creates a notification and delivers it to all active users, one role, or one user. The recipient set is resolved once at creation time.
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body dto.CreateNotificationRequest true "Notification"
// @Success 201 {object} dto.APIResponse{data=dto.NotificationResponse} "Created with delivery count"
// @Failure 400 {object} dto.ErrorResponse "Unknown role or recipient type"
// @Failure 404 {object} dto.ErrorResponse "Recipient user not found"
// @Security BearerAuth
// @Router /admin/notifications [post]
func (c *NotificationController) Create(ctx *gin.Context) {
	var req dto.CreateNotificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	n, delivered, err := c.notificationService.Create(ctx.Request.Context(), middleware.CallerID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("notificationID", n.ID).Int64("delivered", delivered).Msg("Notification created")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.NewNotificationResponse(n, delivered)})
}

// List handles the admin notification listing
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Notifications"
// @Security BearerAuth
// @Router /admin/notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	page, size := helpers.ParsePageParams(ctx)
	notifications, pagination, err := c.notificationService.ListAll(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, dto.NewNotificationResponse(n, 0))
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{Items: items, Pagination: pagination}})
}

// Get handles single-notification lookup
// @Summary Get a notification
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.NotificationResponse} "Notification with delivery count"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Security BearerAuth
// @Router /admin/notifications/{id} [get]
func (c *NotificationController) Get(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	n, delivered, err := c.notificationService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewNotificationResponse(n, delivered)})
}

// Update handles notification edits
// @Summary Edit a notification
// @Description Edits the title and body. System notifications are immutable.
// @Tags notifications
// @Accept json
// @Produce json
// @Param id path int true "Notification ID"
// @Param request body dto.UpdateNotificationRequest true "New title and body"
// @Success 200 {object} dto.APIResponse{data=dto.NotificationResponse} "Updated notification"
// @Failure 403 {object} dto.ErrorResponse "System notifications cannot be modified"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Security BearerAuth
// @Router /admin/notifications/{id} [patch]
func (c *NotificationController) Update(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateNotificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	n, err := c.notificationService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewNotificationResponse(n, 0)})
}

// Delete handles notification removal
// @Summary Delete a notification
// @Description Removes the notification and all its deliveries. System notifications cannot be deleted.
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 403 {object} dto.ErrorResponse "System notifications cannot be modified"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Security BearerAuth
// @Router /admin/notifications/{id} [delete]
func (c *NotificationController) Delete(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.notificationService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("notificationID", id).Msg("Notification deleted")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"message": "Deleted"}})
}

// Stats handles the admin notification dashboard
// @Summary Notification delivery statistics
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.NotificationStatsResponse} "Totals and read rate"
// @Security BearerAuth
// @Router /admin/notifications/stats [get]
func (c *NotificationController) Stats(ctx *gin.Context) {
	stats, err := c.notificationService.Stats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: stats})
}

// ListMine handles the caller's inbox
// @Summary List own notifications
// @Description Returns the caller's deliveries, newest first, with the unread count.
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.UserNotificationListResponse} "Inbox"
// @Security BearerAuth
// @Router /notifications [get]
func (c *NotificationController) ListMine(ctx *gin.Context) {
	deliveries, unread, err := c.notificationService.ListForUser(ctx.Request.Context(), middleware.CallerID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.UserNotificationResponse, 0, len(deliveries))
	for _, un := range deliveries {
		items = append(items, dto.NewUserNotificationResponse(un))
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.UserNotificationListResponse{
		Notifications: items,
		UnreadCount:   unread,
	}})
}

// MarkRead handles read receipts
// @Summary Mark a notification read
// @Description Marks one of the caller's deliveries as read. Safe to call repeatedly; the read timestamp is stamped only once.
// @Tags notifications
// @Produce json
// @Param id path int true "Delivery ID"
// @Success 200 {object} dto.APIResponse "Marked read"
// @Failure 404 {object} dto.ErrorResponse "Delivery not found"
// @Security BearerAuth
// @Router /notifications/{id}/read [patch]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.notificationService.MarkRead(ctx.Request.Context(), middleware.CallerID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"message": "Marked read"}})
}
