package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
	"github.com/pitchdesk/pitchdesk/internal/domain/lifecycle"
)

func TestQueryService_GetPitch(t *testing.T) {
	pitchRepo := &mockPitchRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.Pitch, error) {
			if id == 10 {
				return &entity.Pitch{ID: 10, Status: lifecycle.StatusPending.String()}, nil
			}
			return nil, nil
		},
	}
	service := NewQueryService(pitchRepo, &mockEventRepo{}, &mockPayoutRepo{}, &mockLogger{})

	pitch, err := service.GetPitch(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetPitch() error = %v", err)
	}
	if pitch.ID != 10 {
		t.Errorf("GetPitch() pitch.ID = %v, want 10", pitch.ID)
	}

	if _, err := service.GetPitch(context.Background(), 11); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("GetPitch() error = %v, want ErrInvalidInput for an unknown pitch", err)
	}
}

func TestQueryService_ListProjectPitches(t *testing.T) {
	pitchRepo := &mockPitchRepo{
		listByProjectIDFunc: func(ctx context.Context, projectID int64) ([]*entity.Pitch, error) {
			return []*entity.Pitch{
				{ID: 11, ProjectID: projectID},
				{ID: 10, ProjectID: projectID},
			}, nil
		},
	}
	service := NewQueryService(pitchRepo, &mockEventRepo{}, &mockPayoutRepo{}, &mockLogger{})

	pitches, err := service.ListProjectPitches(context.Background(), 20)
	if err != nil {
		t.Fatalf("ListProjectPitches() error = %v", err)
	}
	if len(pitches) != 2 {
		t.Errorf("ListProjectPitches() returned %d pitches, want 2", len(pitches))
	}
}

func TestQueryService_ListPitchEvents(t *testing.T) {
	eventRepo := &mockEventRepo{
		pitchEvents: []*entity.PitchEvent{
			{ID: 1, PitchID: 10, EventType: entity.EventTypeStatusChange},
		},
	}
	service := NewQueryService(&mockPitchRepo{}, eventRepo, &mockPayoutRepo{}, &mockLogger{})

	events, err := service.ListPitchEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListPitchEvents() error = %v", err)
	}
	if len(events) != 1 {
		t.Errorf("ListPitchEvents() returned %d events, want 1", len(events))
	}
}

func TestQueryService_GetPayout(t *testing.T) {
	payoutRepo := &mockPayoutRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.PayoutSchedule, error) {
			return nil, nil
		},
	}
	service := NewQueryService(&mockPitchRepo{}, &mockEventRepo{}, payoutRepo, &mockLogger{})

	if _, err := service.GetPayout(context.Background(), 30); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("GetPayout() error = %v, want ErrInvalidInput for an unknown schedule", err)
	}
}
