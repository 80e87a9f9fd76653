package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
	"github.com/pitchdesk/pitchdesk/internal/payout"
)

// PayoutService exposes hold-date calculation and the admin bypass
type PayoutService interface {
	CalculateHoldReleaseDate(ctx context.Context, workflowType string) (time.Time, error)
	BypassHold(ctx context.Context, payoutID int64, reason string, adminID int64) error
}

type payoutServiceImpl struct {
	payoutRepo  port.PayoutRepository
	eventRepo   port.EventRepository
	actors      port.ActorDirectory
	policyStore port.PolicyStore
	txManager   port.TransactionManager
	clock       port.Clock
	logger      Logger
}

// NewPayoutService creates a new PayoutService
func NewPayoutService(
	payoutRepo port.PayoutRepository,
	eventRepo port.EventRepository,
	actors port.ActorDirectory,
	policyStore port.PolicyStore,
	txManager port.TransactionManager,
	clock port.Clock,
	logger Logger,
) PayoutService {
	return &payoutServiceImpl{
		payoutRepo:  payoutRepo,
		eventRepo:   eventRepo,
		actors:      actors,
		policyStore: policyStore,
		txManager:   txManager,
		clock:       clock,
		logger:      logger,
	}
}

// CalculateHoldReleaseDate computes the release date for the given workflow
// type under the current hold policy.
func (s *payoutServiceImpl) CalculateHoldReleaseDate(ctx context.Context, workflowType string) (time.Time, error) {
	policy, err := s.policyStore.CurrentHoldPolicy(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: load hold policy: %v", ErrDependencyFailure, err)
	}
	return payout.ReleaseDate(policy, workflowType, s.clock.Now()), nil
}

// BypassHold lets an authorized admin skip the hold, dropping the release
// date to the minimum-hold floor and stamping the bypass audit fields.
func (s *payoutServiceImpl) BypassHold(ctx context.Context, payoutID int64, reason string, adminID int64) error {
	policy, err := s.policyStore.CurrentHoldPolicy(ctx)
	if err != nil {
		return fmt.Errorf("%w: load hold policy: %v", ErrDependencyFailure, err)
	}

	actor, err := s.actors.ActorByID(ctx, adminID)
	if err != nil {
		return fmt.Errorf("%w: resolve actor: %v", ErrDependencyFailure, err)
	}
	if actor == nil || !payout.CanBypass(policy, actor) {
		return fmt.Errorf("%w: user %d may not bypass payout holds", ErrUnauthorized, adminID)
	}

	trimmed, ok := payout.NormalizeBypassReason(policy, reason)
	if !ok {
		return fmt.Errorf("%w: bypass reason is required", ErrInvalidInput)
	}

	schedule, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return fmt.Errorf("%w: get payout schedule: %v", ErrDependencyFailure, err)
	}
	if schedule == nil {
		return fmt.Errorf("%w: payout schedule %d not found", ErrInvalidInput, payoutID)
	}
	if schedule.HoldBypassed {
		return fmt.Errorf("%w: hold already bypassed", ErrAlreadyFinalized)
	}

	now := s.clock.Now()
	releaseDate := now.Add(time.Duration(policy.MinimumHoldHours) * time.Hour)

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.payoutRepo.BypassIf(txCtx, payoutID, releaseDate, trimmed, adminID, now)
		if err != nil {
			return fmt.Errorf("bypass hold: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: hold already bypassed", ErrAlreadyFinalized)
		}

		if policy.AuditBypass {
			event := &entity.PitchEvent{
				PitchID:        schedule.PitchID,
				ActorUserID:    adminID,
				EventType:      entity.EventTypeHoldBypass,
				PreviousStatus: "",
				NewStatus:      "",
				Comment:        trimmed,
				CreatedAt:      now,
			}
			if err := s.eventRepo.CreatePitchEvent(txCtx, event); err != nil {
				return fmt.Errorf("create bypass event: %w", err)
			}
		}
		return nil
	})

	if err != nil {
		s.logger.Error("Failed to bypass payout hold", "error", err, "payout_id", payoutID)
		if isTaxonomyError(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrDependencyFailure, err)
	}

	s.logger.Info("Payout hold bypassed",
		"payout_id", payoutID, "admin_id", adminID, "release_date", releaseDate)
	return nil
}
