package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
)

// SnapshotRepository implements port.SnapshotRepository
type SnapshotRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sql.DB, logger *zap.Logger) port.SnapshotRepository {
	return &SnapshotRepository{
		db:     db,
		logger: logger,
	}
}

// GetByPitchID retrieves the review snapshot for a pitch, if one exists
func (r *SnapshotRepository) GetByPitchID(ctx context.Context, pitchID int64) (*entity.PitchSnapshot, error) {
	query := `
		SELECT id, pitch_id, status, created_at, updated_at
		FROM pitch_snapshots
		WHERE pitch_id = ?
	`

	var snapshot entity.PitchSnapshot
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, pitchID).Scan(
		&snapshot.ID,
		&snapshot.PitchID,
		&snapshot.Status,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get snapshot", zap.Int64("pitch_id", pitchID), zap.Error(err))
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return &snapshot, nil
}

// UpdateStatus updates the snapshot status
func (r *SnapshotRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE pitch_snapshots SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, status, id)
	if err != nil {
		r.logger.Error("Failed to update snapshot status", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to update snapshot status: %w", err)
	}
	return nil
}

// Verify interface compliance
var _ port.SnapshotRepository = (*SnapshotRepository)(nil)
