package port

import (
	"context"
	"time"

	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
	"github.com/pitchdesk/pitchdesk/internal/domain/lifecycle"
)

// PitchRepository defines persistence operations for Pitch
type PitchRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Pitch, error)

	// ListByProjectID returns every pitch on the project, newest first.
	ListByProjectID(ctx context.Context, projectID int64) ([]*entity.Pitch, error)

	// ListOpenSiblings returns every other pitch on the same project whose
	// status is not already terminal or denied. Must be called inside the
	// same transaction as the cascade writes that follow it.
	ListOpenSiblings(ctx context.Context, projectID, excludePitchID int64) ([]*entity.Pitch, error)

	// UpdateStatusIf moves the pitch from one status to another. Returns
	// false without error when the pitch was no longer in the expected
	// status, which is how concurrent movers lose the race.
	UpdateStatusIf(ctx context.Context, id int64, from, to lifecycle.Status) (bool, error)

	// MarkCompleted finalizes the pitch in one conditional update: status,
	// completion time, feedback, rating and payment status are written only
	// if the pitch is still APPROVED and not already payment-finalized.
	MarkCompleted(ctx context.Context, id int64, completedAt time.Time, feedback string, rating *int, paymentStatus string) (bool, error)

	// Close sets the pitch status to CLOSED.
	Close(ctx context.Context, id int64) error
}

// ProjectRepository defines persistence operations for Project
type ProjectRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Project, error)

	// CountEntries returns the number of pitches submitted to the project.
	CountEntries(ctx context.Context, projectID int64) (int, error)

	// ListEntrantUserIDs returns the distinct owners of the project's pitches.
	ListEntrantUserIDs(ctx context.Context, projectID int64) ([]int64, error)

	// CloseEarlyIf stamps the early-closure fields. Returns false without
	// error when submissions were already closed early.
	CloseEarlyIf(ctx context.Context, id int64, closedAt time.Time, closedBy int64, reason string) (bool, error)

	// ReopenIf clears the early-closure fields. Returns false without error
	// when the project was not closed early or judging is finalized.
	ReopenIf(ctx context.Context, id int64) (bool, error)

	// MarkCompleted sets the project status to COMPLETED. Idempotent.
	MarkCompleted(ctx context.Context, id int64) error
}

// SnapshotRepository defines persistence operations for PitchSnapshot
type SnapshotRepository interface {
	GetByPitchID(ctx context.Context, pitchID int64) (*entity.PitchSnapshot, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// EventRepository defines persistence operations for the history trails
type EventRepository interface {
	CreatePitchEvent(ctx context.Context, event *entity.PitchEvent) error
	CreateProjectEvent(ctx context.Context, event *entity.ProjectEvent) error
	ListByPitchID(ctx context.Context, pitchID int64) ([]*entity.PitchEvent, error)
}

// PayoutRepository defines persistence operations for PayoutSchedule
type PayoutRepository interface {
	Create(ctx context.Context, schedule *entity.PayoutSchedule) error
	GetByID(ctx context.Context, id int64) (*entity.PayoutSchedule, error)

	// BypassIf stamps the bypass fields and rewrites the release date.
	// Returns false without error when the hold was already bypassed.
	BypassIf(ctx context.Context, id int64, releaseDate time.Time, reason string, adminID int64, bypassedAt time.Time) (bool, error)
}

// ActorDirectory resolves acting users, including their admin capability.
type ActorDirectory interface {
	ActorByID(ctx context.Context, id int64) (*entity.Actor, error)
}

// NotificationRepository defines persistence operations for DeliveryNotification
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.DeliveryNotification) error
	MarkSent(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, errorMsg string) error
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
