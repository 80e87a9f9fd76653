// Package notify implements the outbound notification adapter. Deliveries
// are best-effort: each attempt is persisted as a record, handed to the
// configured sender, and marked SENT or FAILED. The workflow layer never
// rolls back on a notification error.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
)

// Sender delivers one rendered notification to a recipient. The host system
// plugs in its real channel (email, chat, push) here.
type Sender interface {
	Send(ctx context.Context, recipientUserID int64, kind string, payload map[string]interface{}) error
}

// LogSender is the default Sender: it only logs the delivery. Useful for
// development and as a stand-in until a real channel is wired.
type LogSender struct {
	Logger *zap.Logger
}

// Send logs the notification and reports success.
func (s *LogSender) Send(_ context.Context, recipientUserID int64, kind string, payload map[string]interface{}) error {
	s.Logger.Info("Notification dispatched",
		zap.String("kind", kind),
		zap.Int64("recipient", recipientUserID),
		zap.Any("payload", payload),
	)
	return nil
}

// RecordingNotifier implements port.Notifier, persisting a delivery record
// around every send attempt.
type RecordingNotifier struct {
	records port.NotificationRepository
	sender  Sender
	logger  *zap.Logger
}

// NewRecordingNotifier creates a new recording notifier
func NewRecordingNotifier(records port.NotificationRepository, sender Sender, logger *zap.Logger) *RecordingNotifier {
	return &RecordingNotifier{
		records: records,
		sender:  sender,
		logger:  logger,
	}
}

// Notify persists a pending record, attempts delivery, and stamps the
// outcome. The returned error reports the delivery failure so the caller
// can log it; record bookkeeping failures are logged here and swallowed.
func (n *RecordingNotifier) Notify(ctx context.Context, kind string, recipientUserID int64, subject port.NotificationSubject, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	record := &entity.DeliveryNotification{
		Kind:            kind,
		RecipientUserID: recipientUserID,
		PitchID:         subject.PitchID,
		ProjectID:       subject.ProjectID,
		Payload:         string(body),
		Status:          entity.NotificationStatusPending,
		CreatedAt:       time.Now(),
	}
	if err := n.records.Create(ctx, record); err != nil {
		n.logger.Error("Failed to persist notification record",
			zap.String("kind", kind), zap.Int64("recipient", recipientUserID), zap.Error(err))
	}

	if err := n.sender.Send(ctx, recipientUserID, kind, payload); err != nil {
		if record.ID != 0 {
			if markErr := n.records.MarkFailed(ctx, record.ID, err.Error()); markErr != nil {
				n.logger.Error("Failed to mark notification failed", zap.Int64("id", record.ID), zap.Error(markErr))
			}
		}
		return fmt.Errorf("send %s notification: %w", kind, err)
	}

	if record.ID != 0 {
		if err := n.records.MarkSent(ctx, record.ID); err != nil {
			n.logger.Error("Failed to mark notification sent", zap.Int64("id", record.ID), zap.Error(err))
		}
	}
	return nil
}

// Verify interface compliance
var _ port.Notifier = (*RecordingNotifier)(nil)
