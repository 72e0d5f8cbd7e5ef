package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/logger"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateWithFanout inserts the notification and one delivery row per
// recipient in a single transaction, so a crash cannot leave an orphaned
// notification without deliveries.
func (r *NotificationRepository) CreateWithFanout(ctx context.Context, n *models.Notification, recipientIDs []int64) error {
	now := time.Now()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := r.sb.Insert("notifications").
		Columns("title", "body", "recipient_type", "role", "recipient_id", "is_system", "created_by", "created_at").
		Values(n.Title, n.Body, n.RecipientType, n.Role, n.RecipientID, n.IsSystem, n.CreatedBy, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create notification query: %w", err)
	}

	if err := tx.QueryRow(ctx, sql, args...).Scan(&n.ID); err != nil {
		logger.Error().Err(err).Str("title", n.Title).Msg("Error executing create notification query")
		return fmt.Errorf("error creating notification: %w", err)
	}
	n.CreatedAt = now

	if len(recipientIDs) > 0 {
		builder := r.sb.Insert("user_notifications").
			Columns("notification_id", "user_id", "is_read")
		for _, userID := range recipientIDs {
			builder = builder.Values(n.ID, userID, false)
		}

		sql, args, err = builder.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build fan-out query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Int64("notificationID", n.ID).Int("recipients", len(recipientIDs)).Msg("Error executing fan-out insert")
			return fmt.Errorf("error fanning out notification: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var n models.Notification
	err := row.Scan(&n.ID, &n.Title, &n.Body, &n.RecipientType, &n.Role, &n.RecipientID, &n.IsSystem, &n.CreatedBy, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// GetByID retrieves one notification.
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	sql, args, err := r.sb.Select("id", "title", "body", "recipient_type", "role", "recipient_id", "is_system", "created_by", "created_at").
		From("notifications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get notification query: %w", err)
	}

	n, err := scanNotification(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		logger.Error().Err(err).Int64("notificationID", id).Msg("Error scanning notification row")
		return nil, fmt.Errorf("error retrieving notification: %w", err)
	}
	return n, nil
}

// ListAll returns a page of notifications, newest first, with the total.
func (r *NotificationRepository) ListAll(ctx context.Context, offset uint64, limit int) ([]*models.Notification, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM notifications").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting notifications: %w", err)
	}

	sql, args, err := r.sb.Select("id", "title", "body", "recipient_type", "role", "recipient_id", "is_system", "created_by", "created_at").
		From("notifications").
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list notifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list notifications query")
		return nil, 0, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, total, rows.Err()
}

// CountDeliveries returns the number of delivery rows for one notification.
func (r *NotificationRepository) CountDeliveries(ctx context.Context, notificationID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM user_notifications WHERE notification_id = $1", notificationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting deliveries: %w", err)
	}
	return count, nil
}

// Update edits a notification's title and body.
func (r *NotificationRepository) Update(ctx context.Context, id int64, title, body string) error {
	sql, args, err := r.sb.Update("notifications").
		Set("title", title).
		Set("body", body).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update notification query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("notificationID", id).Msg("Error executing update notification query")
		return fmt.Errorf("error updating notification: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// Delete removes a notification; delivery rows go with it via the FK cascade.
func (r *NotificationRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, "DELETE FROM notifications WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("notificationID", id).Msg("Error executing delete notification query")
		return fmt.Errorf("error deleting notification: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// Stats returns notification, delivery and read totals.
func (r *NotificationRepository) Stats(ctx context.Context) (totalNotifications, totalDeliveries, totalRead int64, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM notifications),
			(SELECT COUNT(*) FROM user_notifications),
			(SELECT COUNT(*) FROM user_notifications WHERE is_read)`).
		Scan(&totalNotifications, &totalDeliveries, &totalRead)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("error querying notification stats: %w", err)
	}
	return totalNotifications, totalDeliveries, totalRead, nil
}

// ListForUser returns a user's deliveries with their notifications, newest
// first.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID int64) ([]*models.UserNotification, error) {
	sql, args, err := r.sb.Select(
		"un.id", "un.notification_id", "un.user_id", "un.is_read", "un.read_at",
		"n.id", "n.title", "n.body", "n.recipient_type", "n.role", "n.recipient_id", "n.is_system", "n.created_by", "n.created_at").
		From("user_notifications un").
		Join("notifications n ON n.id = un.notification_id").
		Where(squirrel.Eq{"un.user_id": userID}).
		OrderBy("n.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list user notifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing list user notifications query")
		return nil, fmt.Errorf("error listing user notifications: %w", err)
	}
	defer rows.Close()

	var deliveries []*models.UserNotification
	for rows.Next() {
		var un models.UserNotification
		var n models.Notification
		err := rows.Scan(
			&un.ID, &un.NotificationID, &un.UserID, &un.IsRead, &un.ReadAt,
			&n.ID, &n.Title, &n.Body, &n.RecipientType, &n.Role, &n.RecipientID, &n.IsSystem, &n.CreatedBy, &n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning user notification row: %w", err)
		}
		un.Notification = &n
		deliveries = append(deliveries, &un)
	}
	return deliveries, rows.Err()
}

// UnreadCount returns how many unread deliveries a user has.
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM user_notifications WHERE user_id = $1 AND NOT is_read", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one delivery read. Idempotent: read_at is stamped only on
// the first call.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, userNotificationID int64) error {
	sql, args, err := r.sb.Update("user_notifications").
		Set("is_read", true).
		Set("read_at", squirrel.Expr("COALESCE(read_at, ?)", time.Now())).
		Where(squirrel.Eq{"id": userNotificationID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark read query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userNotificationID", userNotificationID).Msg("Error executing mark read query")
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}
