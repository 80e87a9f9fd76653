package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
)

// EventRepository implements port.EventRepository
type EventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB, logger *zap.Logger) port.EventRepository {
	return &EventRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePitchEvent appends one immutable entry to a pitch's history trail
func (r *EventRepository) CreatePitchEvent(ctx context.Context, event *entity.PitchEvent) error {
	query := `
		INSERT INTO pitch_events (
			pitch_id, actor_user_id, event_type, previous_status, new_status,
			rating, comment, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var rating sql.NullInt64
	if event.Rating != nil {
		rating = sql.NullInt64{Int64: int64(*event.Rating), Valid: true}
	}

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		event.PitchID,
		event.ActorUserID,
		event.EventType,
		event.PreviousStatus,
		event.NewStatus,
		rating,
		event.Comment,
		event.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create pitch event", zap.Int64("pitch_id", event.PitchID), zap.Error(err))
		return fmt.Errorf("failed to create pitch event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	event.ID = id
	return nil
}

// CreateProjectEvent appends one immutable entry to a project's audit trail
func (r *EventRepository) CreateProjectEvent(ctx context.Context, event *entity.ProjectEvent) error {
	query := `
		INSERT INTO project_events (
			project_id, actor_user_id, event_type, entry_count, comment, created_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		event.ProjectID,
		event.ActorUserID,
		event.EventType,
		event.EntryCount,
		event.Comment,
		event.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create project event", zap.Int64("project_id", event.ProjectID), zap.Error(err))
		return fmt.Errorf("failed to create project event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	event.ID = id
	return nil
}

// ListByPitchID retrieves a pitch's history trail, oldest first
func (r *EventRepository) ListByPitchID(ctx context.Context, pitchID int64) ([]*entity.PitchEvent, error) {
	query := `
		SELECT id, pitch_id, actor_user_id, event_type, previous_status,
			new_status, rating, comment, created_at
		FROM pitch_events
		WHERE pitch_id = ?
		ORDER BY id
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, pitchID)
	if err != nil {
		r.logger.Error("Failed to list pitch events", zap.Int64("pitch_id", pitchID), zap.Error(err))
		return nil, fmt.Errorf("failed to list pitch events: %w", err)
	}
	defer rows.Close()

	var events []*entity.PitchEvent
	for rows.Next() {
		var event entity.PitchEvent
		var rating sql.NullInt64

		err := rows.Scan(
			&event.ID,
			&event.PitchID,
			&event.ActorUserID,
			&event.EventType,
			&event.PreviousStatus,
			&event.NewStatus,
			&rating,
			&event.Comment,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pitch event: %w", err)
		}

		if rating.Valid {
			v := int(rating.Int64)
			event.Rating = &v
		}
		events = append(events, &event)
	}
	return events, rows.Err()
}

// Verify interface compliance
var _ port.EventRepository = (*EventRepository)(nil)
