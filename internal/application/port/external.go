package port

import (
	"context"
	"time"

	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
)

// Notifier delivers a notification to a recipient. Delivery is best-effort:
// callers log failures and continue, they never roll back on a Notify error.
type Notifier interface {
	Notify(ctx context.Context, kind string, recipientUserID int64, subject NotificationSubject, payload map[string]interface{}) error
}

// NotificationSubject identifies the entity a notification is about.
type NotificationSubject struct {
	PitchID   *int64
	ProjectID *int64
}

// ProjectFinalizer marks the parent project completed. Implementations must
// be idempotent; completing an already-completed project is not an error.
type ProjectFinalizer interface {
	CompleteProject(ctx context.Context, project *entity.Project) error
}

// PolicyStore returns the single current payout hold policy.
type PolicyStore interface {
	CurrentHoldPolicy(ctx context.Context) (*entity.PayoutHoldPolicy, error)
}

// PortalLinkIssuer issues a signed, time-limited client portal link.
type PortalLinkIssuer interface {
	IssueLink(projectID, clientUserID int64) (string, error)
}

// Clock supplies the current time. Injectable for deterministic tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }
