package services

import (
	"context"
	"math"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/helpers"
	"github.com/adeyemi/siwes-portal/internal/pkg/logger"
)

// NotificationService handles notification creation, fan-out and read state
type NotificationService struct {
	notifications NotificationStore
	users         UserStore
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications NotificationStore, users UserStore) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
	}
}

// Create makes an admin notification and fans it out to the recipient set
// resolved at creation time. Users activated later do not receive it.
func (s *NotificationService) Create(ctx context.Context, createdBy int64, req dto.CreateNotificationRequest) (*models.Notification, int64, error) {
	n := &models.Notification{
		Title:         req.Title,
		Body:          req.Body,
		RecipientType: models.RecipientType(req.RecipientType),
		CreatedBy:     &createdBy,
	}

	var recipientIDs []int64
	var err error
	switch n.RecipientType {
	case models.RecipientAll:
		recipientIDs, err = s.users.ListActiveUserIDs(ctx)
	case models.RecipientRole:
		if !models.ValidRole(req.Role) {
			return nil, 0, apperrors.NewBadRequestError("unknown role: " + req.Role)
		}
		role := models.RoleType(req.Role)
		n.Role = &role
		recipientIDs, err = s.users.ListActiveUserIDsByRole(ctx, role)
	case models.RecipientUser:
		recipient, lookupErr := s.users.GetUserByID(ctx, req.RecipientID)
		if lookupErr != nil {
			return nil, 0, lookupErr
		}
		if !recipient.IsActive {
			return nil, 0, apperrors.NewBadRequestError("recipient account is disabled")
		}
		n.RecipientID = &req.RecipientID
		recipientIDs = []int64{req.RecipientID}
	default:
		return nil, 0, apperrors.NewBadRequestError("unknown recipient type: " + req.RecipientType)
	}
	if err != nil {
		return nil, 0, err
	}

	if err := s.notifications.CreateWithFanout(ctx, n, recipientIDs); err != nil {
		return nil, 0, err
	}
	logger.Info().Int64("notificationID", n.ID).Int("recipients", len(recipientIDs)).Msg("Notification fanned out")
	return n, int64(len(recipientIDs)), nil
}

// CreateSystem delivers a portal-generated notification to one user. System
// notifications cannot be edited or deleted afterwards.
func (s *NotificationService) CreateSystem(ctx context.Context, userID int64, title, body string) error {
	n := &models.Notification{
		Title:         title,
		Body:          body,
		RecipientType: models.RecipientUser,
		RecipientID:   &userID,
		IsSystem:      true,
	}
	return s.notifications.CreateWithFanout(ctx, n, []int64{userID})
}

// ListAll returns a page of notifications for the admin view.
func (s *NotificationService) ListAll(ctx context.Context, page, size int) ([]*models.Notification, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	notifications, total, err := s.notifications.ListAll(ctx, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return notifications, helpers.NewPaginationInfo(total, page, limit), nil
}

// Get returns one notification with its delivery count.
func (s *NotificationService) Get(ctx context.Context, id int64) (*models.Notification, int64, error) {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	delivered, err := s.notifications.CountDeliveries(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return n, delivered, nil
}

// Update edits a notification's title and body. System notifications are
// immutable.
func (s *NotificationService) Update(ctx context.Context, id int64, req dto.UpdateNotificationRequest) (*models.Notification, error) {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.IsSystem {
		return nil, apperrors.ErrSystemNotification
	}

	if err := s.notifications.Update(ctx, id, req.Title, req.Body); err != nil {
		return nil, err
	}
	n.Title = req.Title
	n.Body = req.Body
	return n, nil
}

// Delete removes a notification and its deliveries. System notifications
// cannot be deleted.
func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.IsSystem {
		return apperrors.ErrSystemNotification
	}
	return s.notifications.Delete(ctx, id)
}

// Stats summarizes delivery and read totals for the admin dashboard.
func (s *NotificationService) Stats(ctx context.Context) (dto.NotificationStatsResponse, error) {
	totalNotifications, totalDeliveries, totalRead, err := s.notifications.Stats(ctx)
	if err != nil {
		return dto.NotificationStatsResponse{}, err
	}

	resp := dto.NotificationStatsResponse{
		TotalNotifications: totalNotifications,
		TotalDeliveries:    totalDeliveries,
		TotalRead:          totalRead,
	}
	if totalDeliveries > 0 {
		resp.ReadRate = math.Round(float64(totalRead)/float64(totalDeliveries)*10000) / 100
	}
	return resp, nil
}

// ListForUser returns the caller's deliveries with the unread count.
func (s *NotificationService) ListForUser(ctx context.Context, userID int64) ([]*models.UserNotification, int64, error) {
	deliveries, err := s.notifications.ListForUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.notifications.UnreadCount(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return deliveries, unread, nil
}

// MarkRead marks one of the caller's deliveries as read. Safe to repeat.
func (s *NotificationService) MarkRead(ctx context.Context, userID, userNotificationID int64) error {
	return s.notifications.MarkRead(ctx, userID, userNotificationID)
}
