package service

import (
	"context"
	"fmt"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
)

// QueryService serves the read side of the HTTP surface.
type QueryService interface {
	GetPitch(ctx context.Context, id int64) (*entity.Pitch, error)
	ListProjectPitches(ctx context.Context, projectID int64) ([]*entity.Pitch, error)
	ListPitchEvents(ctx context.Context, pitchID int64) ([]*entity.PitchEvent, error)
	GetPayout(ctx context.Context, id int64) (*entity.PayoutSchedule, error)
}

type queryServiceImpl struct {
	pitchRepo  port.PitchRepository
	eventRepo  port.EventRepository
	payoutRepo port.PayoutRepository
	logger     Logger
}

// NewQueryService creates a new QueryService
func NewQueryService(
	pitchRepo port.PitchRepository,
	eventRepo port.EventRepository,
	payoutRepo port.PayoutRepository,
	logger Logger,
) QueryService {
	return &queryServiceImpl{
		pitchRepo:  pitchRepo,
		eventRepo:  eventRepo,
		payoutRepo: payoutRepo,
		logger:     logger,
	}
}

func (s *queryServiceImpl) GetPitch(ctx context.Context, id int64) (*entity.Pitch, error) {
	pitch, err := s.pitchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: get pitch: %v", ErrDependencyFailure, err)
	}
	if pitch == nil {
		return nil, fmt.Errorf("%w: pitch %d not found", ErrInvalidInput, id)
	}
	return pitch, nil
}

func (s *queryServiceImpl) ListProjectPitches(ctx context.Context, projectID int64) ([]*entity.Pitch, error) {
	pitches, err := s.pitchRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: list pitches: %v", ErrDependencyFailure, err)
	}
	return pitches, nil
}

func (s *queryServiceImpl) ListPitchEvents(ctx context.Context, pitchID int64) ([]*entity.PitchEvent, error) {
	events, err := s.eventRepo.ListByPitchID(ctx, pitchID)
	if err != nil {
		return nil, fmt.Errorf("%w: list events: %v", ErrDependencyFailure, err)
	}
	return events, nil
}

func (s *queryServiceImpl) GetPayout(ctx context.Context, id int64) (*entity.PayoutSchedule, error) {
	schedule, err := s.payoutRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: get payout schedule: %v", ErrDependencyFailure, err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("%w: payout schedule %d not found", ErrInvalidInput, id)
	}
	return schedule, nil
}
