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

// ProjectRepository implements port.ProjectRepository
type ProjectRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB, logger *zap.Logger) port.ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	query := `
		SELECT id, owner_user_id, kind, status, title, budget_cents,
			client_user_id, submission_deadline, submissions_closed_early_at,
			submissions_closed_early_by, early_closure_reason,
			judging_finalized, created_at, updated_at
		FROM projects
		WHERE id = ?
	`

	var project entity.Project
	var clientUserID, closedEarlyBy sql.NullInt64
	var deadline, closedEarlyAt sql.NullTime
	var closureReason sql.NullString

	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.OwnerUserID,
		&project.Kind,
		&project.Status,
		&project.Title,
		&project.BudgetCents,
		&clientUserID,
		&deadline,
		&closedEarlyAt,
		&closedEarlyBy,
		&closureReason,
		&project.JudgingFinalized,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get project", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if clientUserID.Valid {
		project.ClientUserID = &clientUserID.Int64
	}
	if deadline.Valid {
		project.SubmissionDeadline = &deadline.Time
	}
	if closedEarlyAt.Valid {
		project.SubmissionsClosedEarlyAt = &closedEarlyAt.Time
	}
	if closedEarlyBy.Valid {
		project.SubmissionsClosedEarlyBy = &closedEarlyBy.Int64
	}
	if closureReason.Valid {
		project.EarlyClosureReason = closureReason.String
	}

	return &project, nil
}

// CountEntries counts the pitches submitted to the project
func (r *ProjectRepository) CountEntries(ctx context.Context, projectID int64) (int, error) {
	query := `SELECT COUNT(*) FROM pitches WHERE project_id = ?`

	var count int
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, projectID).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count entries", zap.Int64("project_id", projectID), zap.Error(err))
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// ListEntrantUserIDs lists the distinct pitch owners on the project
func (r *ProjectRepository) ListEntrantUserIDs(ctx context.Context, projectID int64) ([]int64, error) {
	query := `SELECT DISTINCT owner_user_id FROM pitches WHERE project_id = ? ORDER BY owner_user_id`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to list entrants", zap.Int64("project_id", projectID), zap.Error(err))
		return nil, fmt.Errorf("failed to list entrants: %w", err)
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan entrant: %w", err)
		}
		userIDs = append(userIDs, userID)
	}
	return userIDs, rows.Err()
}

// CloseEarlyIf stamps the early-closure fields if submissions are still open
func (r *ProjectRepository) CloseEarlyIf(ctx context.Context, id int64, closedAt time.Time, closedBy int64, reason string) (bool, error) {
	query := `
		UPDATE projects
		SET submissions_closed_early_at = ?, submissions_closed_early_by = ?,
			early_closure_reason = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND submissions_closed_early_at IS NULL
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, closedAt, closedBy, reason, id)
	if err != nil {
		r.logger.Error("Failed to close submissions early", zap.Int64("id", id), zap.Error(err))
		return false, fmt.Errorf("failed to close submissions early: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected == 1, nil
}

// ReopenIf clears the early-closure fields while judging is still open
func (r *ProjectRepository) ReopenIf(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE projects
		SET submissions_closed_early_at = NULL, submissions_closed_early_by = NULL,
			early_closure_reason = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND submissions_closed_early_at IS NOT NULL AND judging_finalized = 0
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to reopen submissions", zap.Int64("id", id), zap.Error(err))
		return false, fmt.Errorf("failed to reopen submissions: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected == 1, nil
}

// MarkCompleted sets the project status to COMPLETED. Idempotent: completing
// an already-completed project affects zero rows and is not an error.
func (r *ProjectRepository) MarkCompleted(ctx context.Context, id int64) error {
	query := `
		UPDATE projects
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status != ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		entity.ProjectStatusCompleted, id, entity.ProjectStatusCompleted)
	if err != nil {
		r.logger.Error("Failed to mark project completed", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to mark project completed: %w", err)
	}
	return nil
}

// Verify interface compliance
var _ port.ProjectRepository = (*ProjectRepository)(nil)
