package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
)

// ActorRepository implements port.ActorDirectory. The admin capability is
// resolved here, once, from the user row; business logic only ever sees the
// boolean.
type ActorRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewActorRepository creates a new actor repository
func NewActorRepository(db *sql.DB, logger *zap.Logger) port.ActorDirectory {
	return &ActorRepository{
		db:     db,
		logger: logger,
	}
}

// ActorByID resolves an acting user
func (r *ActorRepository) ActorByID(ctx context.Context, id int64) (*entity.Actor, error) {
	query := `SELECT id, name, is_admin FROM users WHERE id = ?`

	var actor entity.Actor
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&actor.ID,
		&actor.Name,
		&actor.IsAdmin,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get actor", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}
	return &actor, nil
}

// Verify interface compliance
var _ port.ActorDirectory = (*ActorRepository)(nil)
