package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
	"github.com/pitchdesk/pitchdesk/internal/domain/lifecycle"
)

// PitchRepository implements port.PitchRepository
type PitchRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPitchRepository creates a new pitch repository
func NewPitchRepository(db *sql.DB, logger *zap.Logger) port.PitchRepository {
	return &PitchRepository{
		db:     db,
		logger: logger,
	}
}

const pitchColumns = `id, project_id, owner_user_id, status, payment_status,
	title, feedback, rating, completed_at, created_at, updated_at`

// GetByID retrieves a pitch by ID
func (r *PitchRepository) GetByID(ctx context.Context, id int64) (*entity.Pitch, error) {
	query := fmt.Sprintf(`SELECT %s FROM pitches WHERE id = ?`, pitchColumns)

	pitch, err := scanPitch(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get pitch", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get pitch: %w", err)
	}
	return pitch, nil
}

// ListByProjectID retrieves every pitch on the project, newest first.
func (r *PitchRepository) ListByProjectID(ctx context.Context, projectID int64) ([]*entity.Pitch, error) {
	query := fmt.Sprintf(`SELECT %s FROM pitches WHERE project_id = ? ORDER BY id DESC`, pitchColumns)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to list pitches", zap.Int64("project_id", projectID), zap.Error(err))
		return nil, fmt.Errorf("failed to list pitches: %w", err)
	}
	defer rows.Close()

	var pitches []*entity.Pitch
	for rows.Next() {
		pitch, err := scanPitch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pitch: %w", err)
		}
		pitches = append(pitches, pitch)
	}
	return pitches, rows.Err()
}

// ListOpenSiblings retrieves the other pitches on the project that are not
// in a terminal or denied status.
func (r *PitchRepository) ListOpenSiblings(ctx context.Context, projectID, excludePitchID int64) ([]*entity.Pitch, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM pitches
		WHERE project_id = ? AND id != ? AND status NOT IN (?, ?, ?)
		ORDER BY id
	`, pitchColumns)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query,
		projectID, excludePitchID,
		lifecycle.StatusCompleted.String(),
		lifecycle.StatusClosed.String(),
		lifecycle.StatusDenied.String(),
	)
	if err != nil {
		r.logger.Error("Failed to list open siblings", zap.Int64("project_id", projectID), zap.Error(err))
		return nil, fmt.Errorf("failed to list open siblings: %w", err)
	}
	defer rows.Close()

	var siblings []*entity.Pitch
	for rows.Next() {
		pitch, err := scanPitch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pitch: %w", err)
		}
		siblings = append(siblings, pitch)
	}
	return siblings, rows.Err()
}

// UpdateStatusIf moves the pitch status conditionally on its current value.
func (r *PitchRepository) UpdateStatusIf(ctx context.Context, id int64, from, to lifecycle.Status) (bool, error) {
	query := `
		UPDATE pitches
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, to.String(), id, from.String())
	if err != nil {
		r.logger.Error("Failed to update pitch status", zap.Int64("id", id), zap.Error(err))
		return false, fmt.Errorf("failed to update pitch status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected == 1, nil
}

// MarkCompleted finalizes the pitch row in a single conditional update.
func (r *PitchRepository) MarkCompleted(ctx context.Context, id int64, completedAt time.Time, feedback string, rating *int, paymentStatus string) (bool, error) {
	query := `
		UPDATE pitches
		SET status = ?, payment_status = ?, completed_at = ?, feedback = ?,
			rating = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ? AND payment_status NOT IN (?, ?)
	`

	var ratingVal sql.NullInt64
	if rating != nil {
		ratingVal = sql.NullInt64{Int64: int64(*rating), Valid: true}
	}

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		lifecycle.StatusCompleted.String(),
		paymentStatus,
		completedAt,
		feedback,
		ratingVal,
		id,
		lifecycle.StatusApproved.String(),
		entity.PaymentStatusPaid,
		entity.PaymentStatusProcessing,
	)
	if err != nil {
		r.logger.Error("Failed to mark pitch completed", zap.Int64("id", id), zap.Error(err))
		return false, fmt.Errorf("failed to mark pitch completed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected == 1, nil
}

// Close sets the pitch status to CLOSED
func (r *PitchRepository) Close(ctx context.Context, id int64) error {
	query := `UPDATE pitches SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, lifecycle.StatusClosed.String(), id)
	if err != nil {
		r.logger.Error("Failed to close pitch", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to close pitch: %w", err)
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPitch(row rowScanner) (*entity.Pitch, error) {
	var pitch entity.Pitch
	var rating sql.NullInt64
	var completedAt sql.NullTime

	err := row.Scan(
		&pitch.ID,
		&pitch.ProjectID,
		&pitch.OwnerUserID,
		&pitch.Status,
		&pitch.PaymentStatus,
		&pitch.Title,
		&pitch.Feedback,
		&rating,
		&completedAt,
		&pitch.CreatedAt,
		&pitch.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		v := int(rating.Int64)
		pitch.Rating = &v
	}
	if completedAt.Valid {
		pitch.CompletedAt = &completedAt.Time
	}
	return &pitch, nil
}

// Verify interface compliance
var _ port.PitchRepository = (*PitchRepository)(nil)
