package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
)

// earlyClosureLeadTime is how far out the submission deadline must be for an
// early closure to still make sense.
const earlyClosureLeadTime = 24 * time.Hour

// ContestService toggles a contest project's early-closure flag
type ContestService interface {
	CloseEarly(ctx context.Context, projectID, actorID int64, reason string) error
	Reopen(ctx context.Context, projectID, actorID int64) error
}

type contestServiceImpl struct {
	projectRepo port.ProjectRepository
	eventRepo   port.EventRepository
	txManager   port.TransactionManager
	notifier    port.Notifier
	clock       port.Clock
	logger      Logger
}

// NewContestService creates a new ContestService
func NewContestService(
	projectRepo port.ProjectRepository,
	eventRepo port.EventRepository,
	txManager port.TransactionManager,
	notifier port.Notifier,
	clock port.Clock,
	logger Logger,
) ContestService {
	return &contestServiceImpl{
		projectRepo: projectRepo,
		eventRepo:   eventRepo,
		txManager:   txManager,
		notifier:    notifier,
		clock:       clock,
		logger:      logger,
	}
}

// CloseEarly closes contest submissions ahead of the deadline.
func (s *contestServiceImpl) CloseEarly(ctx context.Context, projectID, actorID int64, reason string) error {
	project, entryCount, err := s.loadContest(ctx, projectID, actorID)
	if err != nil {
		return err
	}

	if entryCount == 0 {
		return fmt.Errorf("%w: project %d has no contest entries", ErrInvalidState, projectID)
	}
	if project.WasClosedEarly() {
		return fmt.Errorf("%w: submissions already closed early", ErrInvalidState)
	}
	now := s.clock.Now()
	if project.SubmissionDeadline != nil && project.SubmissionDeadline.Sub(now) <= earlyClosureLeadTime {
		return fmt.Errorf("%w: submission deadline is less than %s away", ErrInvalidState, earlyClosureLeadTime)
	}

	reason = strings.TrimSpace(reason)

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.projectRepo.CloseEarlyIf(txCtx, projectID, now, actorID, reason)
		if err != nil {
			return fmt.Errorf("close early: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: submissions already closed early", ErrInvalidState)
		}

		event := &entity.ProjectEvent{
			ProjectID:   projectID,
			ActorUserID: actorID,
			EventType:   entity.EventTypeClosedEarly,
			EntryCount:  entryCount,
			Comment:     reason,
			CreatedAt:   now,
		}
		if err := s.eventRepo.CreateProjectEvent(txCtx, event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		return nil
	})

	if err != nil {
		s.logger.Error("Failed to close submissions early", "error", err, "project_id", projectID)
		if isTaxonomyError(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrDependencyFailure, err)
	}

	s.logger.Info("Submissions closed early",
		"project_id", projectID, "actor_id", actorID, "entry_count", entryCount)

	s.notifyEntrants(ctx, project, entity.NotificationKindClosedEarly, map[string]interface{}{
		"project_title": project.Title,
		"reason":        reason,
	})
	return nil
}

// Reopen reverses an early closure while the original deadline still holds.
func (s *contestServiceImpl) Reopen(ctx context.Context, projectID, actorID int64) error {
	project, _, err := s.loadContest(ctx, projectID, actorID)
	if err != nil {
		return err
	}

	if !project.WasClosedEarly() {
		return fmt.Errorf("%w: submissions were not closed early", ErrInvalidState)
	}
	if project.JudgingFinalized {
		return fmt.Errorf("%w: judging already finalized", ErrInvalidState)
	}
	now := s.clock.Now()
	if project.SubmissionDeadline != nil && !project.SubmissionDeadline.After(now) {
		return fmt.Errorf("%w: original submission deadline has passed", ErrInvalidState)
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.projectRepo.ReopenIf(txCtx, projectID)
		if err != nil {
			return fmt.Errorf("reopen: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: submissions are not closed early", ErrInvalidState)
		}

		event := &entity.ProjectEvent{
			ProjectID:   projectID,
			ActorUserID: actorID,
			EventType:   entity.EventTypeReopened,
			CreatedAt:   now,
		}
		if err := s.eventRepo.CreateProjectEvent(txCtx, event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		return nil
	})

	if err != nil {
		s.logger.Error("Failed to reopen submissions", "error", err, "project_id", projectID)
		if isTaxonomyError(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrDependencyFailure, err)
	}

	s.logger.Info("Submissions reopened", "project_id", projectID, "actor_id", actorID)

	s.notifyEntrants(ctx, project, entity.NotificationKindReopened, map[string]interface{}{
		"project_title": project.Title,
	})
	return nil
}

// loadContest fetches the project, verifies ownership and contest kind, and
// counts its entries.
func (s *contestServiceImpl) loadContest(ctx context.Context, projectID, actorID int64) (*entity.Project, int, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: get project: %v", ErrDependencyFailure, err)
	}
	if project == nil {
		return nil, 0, fmt.Errorf("%w: project %d not found", ErrInvalidInput, projectID)
	}
	if !project.IsContest() {
		return nil, 0, fmt.Errorf("%w: project %d is not a contest", ErrInvalidState, projectID)
	}
	if actorID != project.OwnerUserID {
		return nil, 0, fmt.Errorf("%w: user %d does not own project %d", ErrUnauthorized, actorID, projectID)
	}

	count, err := s.projectRepo.CountEntries(ctx, projectID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: count entries: %v", ErrDependencyFailure, err)
	}
	return project, count, nil
}

// notifyEntrants fans out to every current entrant. Each failure is logged
// and isolated; one broken recipient never blocks the rest.
func (s *contestServiceImpl) notifyEntrants(ctx context.Context, project *entity.Project, kind string, payload map[string]interface{}) {
	entrants, err := s.projectRepo.ListEntrantUserIDs(ctx, project.ID)
	if err != nil {
		s.logger.Warn("Failed to list entrants for notification", "error", err, "project_id", project.ID)
		return
	}
	subject := port.NotificationSubject{ProjectID: &project.ID}
	for _, userID := range entrants {
		if err := s.notifier.Notify(ctx, kind, userID, subject, payload); err != nil {
			s.logger.Warn("Entrant notification failed",
				"error", err, "project_id", project.ID, "recipient", userID)
		}
	}
}
