package service

import (
	"context"
	"fmt"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
	"github.com/pitchdesk/pitchdesk/internal/domain/lifecycle"
)

// TransitionService applies validator-approved status moves
type TransitionService interface {
	Transition(ctx context.Context, pitchID, actorID int64, target lifecycle.Status) (*entity.Pitch, error)
}

type transitionServiceImpl struct {
	pitchRepo   port.PitchRepository
	projectRepo port.ProjectRepository
	eventRepo   port.EventRepository
	txManager   port.TransactionManager
	table       *lifecycle.TransitionTable
	clock       port.Clock
	logger      Logger
}

// NewTransitionService creates a new TransitionService
func NewTransitionService(
	pitchRepo port.PitchRepository,
	projectRepo port.ProjectRepository,
	eventRepo port.EventRepository,
	txManager port.TransactionManager,
	table *lifecycle.TransitionTable,
	clock port.Clock,
	logger Logger,
) TransitionService {
	return &transitionServiceImpl{
		pitchRepo:   pitchRepo,
		projectRepo: projectRepo,
		eventRepo:   eventRepo,
		txManager:   txManager,
		table:       table,
		clock:       clock,
		logger:      logger,
	}
}

// Transition moves a pitch along an edge of the transition table. Forward
// moves are open to the pitch owner and the project owner; backward moves
// are reserved for the project owner. Completion must go through the
// completion workflow, never through here.
func (s *transitionServiceImpl) Transition(ctx context.Context, pitchID, actorID int64, target lifecycle.Status) (*entity.Pitch, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, target)
	}
	if target == lifecycle.StatusCompleted {
		return nil, fmt.Errorf("%w: completion runs through the completion workflow", ErrInvalidState)
	}

	pitch, err := s.pitchRepo.GetByID(ctx, pitchID)
	if err != nil {
		return nil, fmt.Errorf("%w: get pitch: %v", ErrDependencyFailure, err)
	}
	if pitch == nil {
		return nil, fmt.Errorf("%w: pitch %d not found", ErrInvalidInput, pitchID)
	}

	project, err := s.projectRepo.GetByID(ctx, pitch.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("%w: get project: %v", ErrDependencyFailure, err)
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %d not found", ErrInvalidInput, pitch.ProjectID)
	}

	current := lifecycle.Status(pitch.Status)
	direction := lifecycle.TransitionDirection(current, target, s.table)

	switch direction {
	case lifecycle.DirectionNone:
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
	case lifecycle.DirectionBackward:
		if actorID != project.OwnerUserID {
			return nil, fmt.Errorf("%w: only the project owner may revert a pitch", ErrUnauthorized)
		}
	case lifecycle.DirectionForward:
		if actorID != project.OwnerUserID && actorID != pitch.OwnerUserID {
			return nil, fmt.Errorf("%w: user %d may not advance pitch %d", ErrUnauthorized, actorID, pitchID)
		}
	}

	now := s.clock.Now()
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.pitchRepo.UpdateStatusIf(txCtx, pitchID, current, target)
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: pitch %d is no longer %s", ErrInvalidState, pitchID, current)
		}

		event := &entity.PitchEvent{
			PitchID:        pitchID,
			ActorUserID:    actorID,
			EventType:      entity.EventTypeStatusChange,
			PreviousStatus: current.String(),
			NewStatus:      target.String(),
			CreatedAt:      now,
		}
		if err := s.eventRepo.CreatePitchEvent(txCtx, event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		return nil
	})

	if err != nil {
		s.logger.Error("Failed to transition pitch", "error", err, "pitch_id", pitchID, "target", target)
		if isTaxonomyError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrDependencyFailure, err)
	}

	s.logger.Info("Pitch transitioned",
		"pitch_id", pitchID, "from", current, "to", target, "direction", direction)

	refreshed, err := s.pitchRepo.GetByID(ctx, pitchID)
	if err != nil {
		return nil, fmt.Errorf("%w: refresh pitch: %v", ErrDependencyFailure, err)
	}
	return refreshed, nil
}
