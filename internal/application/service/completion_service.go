package service

import (
	"context"
	"fmt"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
	"github.com/pitchdesk/pitchdesk/internal/domain/lifecycle"
	"github.com/pitchdesk/pitchdesk/internal/payout"
)

// CompletionService finalizes pitches
type CompletionService interface {
	Complete(ctx context.Context, pitchID, actorID int64, feedback string, rating *int) (*entity.Pitch, error)
}

type completionServiceImpl struct {
	pitchRepo    port.PitchRepository
	projectRepo  port.ProjectRepository
	snapshotRepo port.SnapshotRepository
	eventRepo    port.EventRepository
	payoutRepo   port.PayoutRepository
	policyStore  port.PolicyStore
	txManager    port.TransactionManager
	finalizer    port.ProjectFinalizer
	notifier     port.Notifier
	portal       port.PortalLinkIssuer
	clock        port.Clock
	logger       Logger
}

// NewCompletionService creates a new CompletionService
func NewCompletionService(
	pitchRepo port.PitchRepository,
	projectRepo port.ProjectRepository,
	snapshotRepo port.SnapshotRepository,
	eventRepo port.EventRepository,
	payoutRepo port.PayoutRepository,
	policyStore port.PolicyStore,
	txManager port.TransactionManager,
	finalizer port.ProjectFinalizer,
	notifier port.Notifier,
	portal port.PortalLinkIssuer,
	clock port.Clock,
	logger Logger,
) CompletionService {
	return &completionServiceImpl{
		pitchRepo:    pitchRepo,
		projectRepo:  projectRepo,
		snapshotRepo: snapshotRepo,
		eventRepo:    eventRepo,
		payoutRepo:   payoutRepo,
		policyStore:  policyStore,
		txManager:    txManager,
		finalizer:    finalizer,
		notifier:     notifier,
		portal:       portal,
		clock:        clock,
		logger:       logger,
	}
}

// Complete marks the pitch completed and performs the cascading effects on
// sibling pitches and the parent project as one atomic unit. Notification
// fan-out runs after the transaction commits and never affects the result.
func (s *completionServiceImpl) Complete(ctx context.Context, pitchID, actorID int64, feedback string, rating *int) (*entity.Pitch, error) {
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

	// Preconditions, in order; first failure wins and nothing is mutated.
	if actorID != project.OwnerUserID {
		return nil, fmt.Errorf("%w: user %d does not own project %d", ErrUnauthorized, actorID, project.ID)
	}
	if pitch.Status != lifecycle.StatusApproved.String() {
		return nil, fmt.Errorf("%w: pitch must be approved, got %s", ErrInvalidState, pitch.Status)
	}
	if rating != nil && (*rating < entity.RatingMin || *rating > entity.RatingMax) {
		return nil, fmt.Errorf("%w: rating %d out of range [%d,%d]", ErrInvalidInput, *rating, entity.RatingMin, entity.RatingMax)
	}
	if pitch.IsFinalized() {
		return nil, fmt.Errorf("%w: pitch %d payment status is %s", ErrAlreadyFinalized, pitch.ID, pitch.PaymentStatus)
	}

	paymentStatus := entity.PaymentStatusNotRequired
	if project.BudgetCents > 0 {
		paymentStatus = entity.PaymentStatusPending
	}

	now := s.clock.Now()
	var closedSiblings []*entity.Pitch

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		// The conditional update is the concurrency guard: a second caller
		// racing this one finds the pitch no longer APPROVED and fails here.
		ok, err := s.pitchRepo.MarkCompleted(txCtx, pitch.ID, now, feedback, rating, paymentStatus)
		if err != nil {
			return fmt.Errorf("mark pitch completed: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: pitch %d is no longer approved", ErrInvalidState, pitch.ID)
		}

		snapshot, err := s.snapshotRepo.GetByPitchID(txCtx, pitch.ID)
		if err != nil {
			return fmt.Errorf("get snapshot: %w", err)
		}
		if snapshot != nil {
			if err := s.snapshotRepo.UpdateStatus(txCtx, snapshot.ID, entity.SnapshotStatusCompleted); err != nil {
				return fmt.Errorf("complete snapshot: %w", err)
			}
		}

		// Only standard projects cascade: contest entries finalize
		// independently and the project stays open for judging.
		if project.IsStandard() {
			siblings, err := s.pitchRepo.ListOpenSiblings(txCtx, project.ID, pitch.ID)
			if err != nil {
				return fmt.Errorf("list siblings: %w", err)
			}
			for _, sibling := range siblings {
				if err := s.pitchRepo.Close(txCtx, sibling.ID); err != nil {
					return fmt.Errorf("close sibling %d: %w", sibling.ID, err)
				}
				sibSnapshot, err := s.snapshotRepo.GetByPitchID(txCtx, sibling.ID)
				if err != nil {
					return fmt.Errorf("get sibling snapshot: %w", err)
				}
				if sibSnapshot != nil && sibSnapshot.Status == entity.SnapshotStatusPending {
					if err := s.snapshotRepo.UpdateStatus(txCtx, sibSnapshot.ID, entity.SnapshotStatusDenied); err != nil {
						return fmt.Errorf("deny sibling snapshot: %w", err)
					}
				}
			}
			closedSiblings = siblings

			if err := s.finalizer.CompleteProject(txCtx, project); err != nil {
				return fmt.Errorf("complete project: %w", err)
			}
		}

		event := &entity.PitchEvent{
			PitchID:        pitch.ID,
			ActorUserID:    actorID,
			EventType:      entity.EventTypeStatusChange,
			PreviousStatus: pitch.Status,
			NewStatus:      lifecycle.StatusCompleted.String(),
			Rating:         rating,
			Comment:        feedback,
			CreatedAt:      now,
		}
		if err := s.eventRepo.CreatePitchEvent(txCtx, event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}

		if paymentStatus == entity.PaymentStatusPending {
			policy, err := s.policyStore.CurrentHoldPolicy(txCtx)
			if err != nil {
				return fmt.Errorf("load hold policy: %w", err)
			}
			schedule := &entity.PayoutSchedule{
				PitchID:         pitch.ID,
				ProjectID:       project.ID,
				WorkflowType:    project.WorkflowType(),
				AmountCents:     project.BudgetCents,
				HoldReleaseDate: payout.ReleaseDate(policy, project.WorkflowType(), now),
				CreatedAt:       now,
			}
			if err := s.payoutRepo.Create(txCtx, schedule); err != nil {
				return fmt.Errorf("create payout schedule: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Failed to complete pitch", "error", err, "pitch_id", pitchID)
		if isTaxonomyError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrDependencyFailure, err)
	}

	s.logger.Info("Pitch completed",
		"pitch_id", pitch.ID,
		"project_id", project.ID,
		"payment_status", paymentStatus,
		"closed_siblings", len(closedSiblings),
	)

	s.fanOutCompletion(ctx, pitch, project, closedSiblings)

	refreshed, err := s.pitchRepo.GetByID(ctx, pitchID)
	if err != nil {
		return nil, fmt.Errorf("%w: refresh pitch: %v", ErrDependencyFailure, err)
	}
	return refreshed, nil
}

// fanOutCompletion dispatches the best-effort notifications that follow a
// successful completion. Failures are logged per recipient and never
// escalate.
func (s *completionServiceImpl) fanOutCompletion(ctx context.Context, pitch *entity.Pitch, project *entity.Project, closedSiblings []*entity.Pitch) {
	for _, sibling := range closedSiblings {
		subject := port.NotificationSubject{PitchID: &sibling.ID, ProjectID: &project.ID}
		payload := map[string]interface{}{
			"project_title": project.Title,
			"pitch_title":   sibling.Title,
		}
		if err := s.notifier.Notify(ctx, entity.NotificationKindPitchClosed, sibling.OwnerUserID, subject, payload); err != nil {
			s.logger.Warn("Sibling closure notification failed",
				"error", err, "pitch_id", sibling.ID, "recipient", sibling.OwnerUserID)
		}
	}

	subject := port.NotificationSubject{PitchID: &pitch.ID, ProjectID: &project.ID}
	payload := map[string]interface{}{
		"project_title": project.Title,
		"pitch_title":   pitch.Title,
	}
	if err := s.notifier.Notify(ctx, entity.NotificationKindPitchCompleted, pitch.OwnerUserID, subject, payload); err != nil {
		s.logger.Warn("Completion notification failed",
			"error", err, "pitch_id", pitch.ID, "recipient", pitch.OwnerUserID)
	}

	if project.Kind == entity.ProjectKindClient && project.ClientUserID != nil {
		link, err := s.portal.IssueLink(project.ID, *project.ClientUserID)
		if err != nil {
			s.logger.Warn("Portal link issuance failed", "error", err, "project_id", project.ID)
			return
		}
		portalPayload := map[string]interface{}{
			"project_title": project.Title,
			"portal_link":   link,
		}
		if err := s.notifier.Notify(ctx, entity.NotificationKindClientPortal, *project.ClientUserID, subject, portalPayload); err != nil {
			s.logger.Warn("Client portal notification failed",
				"error", err, "project_id", project.ID, "recipient", *project.ClientUserID)
		}
	}
}
