package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
)

// NotificationRepository implements port.NotificationRepository
type NotificationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB, logger *zap.Logger) port.NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a pending delivery record
func (r *NotificationRepository) Create(ctx context.Context, notification *entity.DeliveryNotification) error {
	query := `
		INSERT INTO delivery_notifications (
			kind, recipient_user_id, pitch_id, project_id, payload, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var pitchID, projectID sql.NullInt64
	if notification.PitchID != nil {
		pitchID = sql.NullInt64{Int64: *notification.PitchID, Valid: true}
	}
	if notification.ProjectID != nil {
		projectID = sql.NullInt64{Int64: *notification.ProjectID, Valid: true}
	}

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		notification.Kind,
		notification.RecipientUserID,
		pitchID,
		projectID,
		notification.Payload,
		notification.Status,
		notification.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create notification record", zap.String("kind", notification.Kind), zap.Error(err))
		return fmt.Errorf("failed to create notification record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	notification.ID = id
	return nil
}

// MarkSent marks the delivery record sent
func (r *NotificationRepository) MarkSent(ctx context.Context, id int64) error {
	query := `UPDATE delivery_notifications SET status = ?, sent_at = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, entity.NotificationStatusSent, id)
	if err != nil {
		r.logger.Error("Failed to mark notification sent", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}
	return nil
}

// MarkFailed marks the delivery record failed with the delivery error
func (r *NotificationRepository) MarkFailed(ctx context.Context, id int64, errorMsg string) error {
	query := `UPDATE delivery_notifications SET status = ?, error_msg = ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, entity.NotificationStatusFailed, errorMsg, id)
	if err != nil {
		r.logger.Error("Failed to mark notification failed", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to mark notification failed: %w", err)
	}
	return nil
}

// Verify interface compliance
var _ port.NotificationRepository = (*NotificationRepository)(nil)
