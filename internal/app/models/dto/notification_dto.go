package dto

import (
	"time"

	"github.com/adeyemi/siwes-portal/internal/app/models"
)

// CreateNotificationRequest creates one notification and fans it out to the
// resolved recipient set.
type CreateNotificationRequest struct {
	Title         string `json:"title" binding:"required"`
	Body          string `json:"body" binding:"required"`
	RecipientType string `json:"recipientType" binding:"required,oneof=ALL ROLE USER"`
	Role          string `json:"role,omitempty"`        // Required when recipientType is ROLE
	RecipientID   int64  `json:"recipientId,omitempty"` // Required when recipientType is USER
}

// UpdateNotificationRequest edits a non-system notification.
type UpdateNotificationRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// NotificationResponse is one notification on the wire.
type NotificationResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	RecipientType string    `json:"recipientType"`
	Role          *string   `json:"role,omitempty"`
	RecipientID   *int64    `json:"recipientId,omitempty"`
	IsSystem      bool      `json:"isSystem"`
	Delivered     int64     `json:"delivered,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewNotificationResponse maps a notification to its response shape.
func NewNotificationResponse(n *models.Notification, delivered int64) NotificationResponse {
	resp := NotificationResponse{
		ID:            n.ID,
		Title:         n.Title,
		Body:          n.Body,
		RecipientType: string(n.RecipientType),
		RecipientID:   n.RecipientID,
		IsSystem:      n.IsSystem,
		Delivered:     delivered,
		CreatedAt:     n.CreatedAt,
	}
	if n.Role != nil {
		role := string(*n.Role)
		resp.Role = &role
	}
	return resp
}

// UserNotificationResponse is one delivery with its read state.
type UserNotificationResponse struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	IsSystem  bool       `json:"isSystem"`
	IsRead    bool       `json:"isRead"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// NewUserNotificationResponse maps a delivery (with its notification loaded)
// to the response shape.
func NewUserNotificationResponse(un *models.UserNotification) UserNotificationResponse {
	resp := UserNotificationResponse{
		ID:     un.ID,
		IsRead: un.IsRead,
		ReadAt: un.ReadAt,
	}
	if un.Notification != nil {
		resp.Title = un.Notification.Title
		resp.Body = un.Notification.Body
		resp.IsSystem = un.Notification.IsSystem
		resp.CreatedAt = un.Notification.CreatedAt
	}
	return resp
}

// UserNotificationListResponse bundles deliveries with the unread count.
type UserNotificationListResponse struct {
	Notifications []UserNotificationResponse `json:"notifications"`
	UnreadCount   int64                      `json:"unreadCount"`
}

// NotificationStatsResponse summarizes delivery and read totals for admins.
type NotificationStatsResponse struct {
	TotalNotifications int64   `json:"totalNotifications"`
	TotalDeliveries    int64   `json:"totalDeliveries"`
	TotalRead          int64   `json:"totalRead"`
	ReadRate           float64 `json:"readRate" example:"72.5"`
}
