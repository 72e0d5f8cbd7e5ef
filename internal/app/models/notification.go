package models

import "time"

// Notification defines a notification based on the 'notifications' table.
// A notification is created once and fanned out into one UserNotification
// per resolved recipient.
type Notification struct {
	ID            int64         `json:"id" db:"id"`
	Title         string        `json:"title" db:"title"`
	Body          string        `json:"body" db:"body"`
	RecipientType RecipientType `json:"recipientType" db:"recipient_type"`
	Role          *RoleType     `json:"role,omitempty" db:"role"`                // Set when RecipientType is ROLE
	RecipientID   *int64        `json:"recipientId,omitempty" db:"recipient_id"` // Set when RecipientType is USER
	IsSystem      bool          `json:"isSystem" db:"is_system"`                 // System notifications cannot be edited or deleted
	CreatedBy     *int64        `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
}

// UserNotification is one delivery of a Notification to one user with its
// own read state, based on the 'user_notifications' table.
type UserNotification struct {
	ID             int64         `json:"id" db:"id"`
	NotificationID int64         `json:"notificationId" db:"notification_id"`
	UserID         int64         `json:"userId" db:"user_id"`
	IsRead         bool          `json:"isRead" db:"is_read"`
	ReadAt         *time.Time    `json:"readAt,omitempty" db:"read_at"`
	Notification   *Notification `json:"notification,omitempty"` // Relation, no db tag
}
