package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
)

// PayoutRepository implements port.PayoutRepository
type PayoutRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPayoutRepository creates a new payout repository
func NewPayoutRepository(db *sql.DB, logger *zap.Logger) port.PayoutRepository {
	return &PayoutRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new payout schedule
func (r *PayoutRepository) Create(ctx context.Context, schedule *entity.PayoutSchedule) error {
	query := `
		INSERT INTO payout_schedules (
			pitch_id, project_id, workflow_type, amount_cents,
			hold_release_date, hold_bypassed, created_at
		) VALUES (?, ?, ?, ?, ?, 0, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		schedule.PitchID,
		schedule.ProjectID,
		schedule.WorkflowType,
		schedule.AmountCents,
		schedule.HoldReleaseDate,
		schedule.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create payout schedule", zap.Int64("pitch_id", schedule.PitchID), zap.Error(err))
		return fmt.Errorf("failed to create payout schedule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	schedule.ID = id
	return nil
}

// GetByID retrieves a payout schedule by ID
func (r *PayoutRepository) GetByID(ctx context.Context, id int64) (*entity.PayoutSchedule, error) {
	query := `
		SELECT id, pitch_id, project_id, workflow_type, amount_cents,
			hold_release_date, hold_bypassed, bypass_reason, bypass_admin_id,
			bypassed_at, created_at
		FROM payout_schedules
		WHERE id = ?
	`

	var schedule entity.PayoutSchedule
	var bypassReason sql.NullString
	var bypassAdminID sql.NullInt64
	var bypassedAt sql.NullTime

	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.PitchID,
		&schedule.ProjectID,
		&schedule.WorkflowType,
		&schedule.AmountCents,
		&schedule.HoldReleaseDate,
		&schedule.HoldBypassed,
		&bypassReason,
		&bypassAdminID,
		&bypassedAt,
		&schedule.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get payout schedule", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get payout schedule: %w", err)
	}

	if bypassReason.Valid {
		schedule.BypassReason = bypassReason.String
	}
	if bypassAdminID.Valid {
		schedule.BypassAdminID = &bypassAdminID.Int64
	}
	if bypassedAt.Valid {
		schedule.BypassedAt = &bypassedAt.Time
	}

	return &schedule, nil
}

// BypassIf stamps the bypass fields if the hold is not already bypassed
func (r *PayoutRepository) BypassIf(ctx context.Context, id int64, releaseDate time.Time, reason string, adminID int64, bypassedAt time.Time) (bool, error) {
	query := `
		UPDATE payout_schedules
		SET hold_release_date = ?, hold_bypassed = 1, bypass_reason = ?,
			bypass_admin_id = ?, bypassed_at = ?
		WHERE id = ? AND hold_bypassed = 0
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, releaseDate, reason, adminID, bypassedAt, id)
	if err != nil {
		r.logger.Error("Failed to bypass payout hold", zap.Int64("id", id), zap.Error(err))
		return false, fmt.Errorf("failed to bypass payout hold: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected == 1, nil
}

// Verify interface compliance
var _ port.PayoutRepository = (*PayoutRepository)(nil)
