package entity

// PaymentStatus constants for Pitch
const (
	PaymentStatusNone        = "NONE"
	PaymentStatusPending     = "PENDING"
	PaymentStatusNotRequired = "NOT_REQUIRED"
	PaymentStatusProcessing  = "PROCESSING"
	PaymentStatusPaid        = "PAID"
)

// Project kind constants
const (
	ProjectKindStandard = "STANDARD"
	ProjectKindContest  = "CONTEST"
	ProjectKindClient   = "CLIENT"
)

// Project status constants
const (
	ProjectStatusActive    = "ACTIVE"
	ProjectStatusCompleted = "COMPLETED"
	ProjectStatusCancelled = "CANCELLED"
)

// Snapshot status constants
const (
	SnapshotStatusPending   = "PENDING"
	SnapshotStatusCompleted = "COMPLETED"
	SnapshotStatusDenied    = "DENIED"
)

// Event type constants
const (
	EventTypeStatusChange = "STATUS_CHANGE"
	EventTypeHoldBypass   = "HOLD_BYPASS"
	EventTypeClosedEarly  = "CLOSED_EARLY"
	EventTypeReopened     = "REOPENED"
)

// Notification kind constants
const (
	NotificationKindPitchCompleted = "PITCH_COMPLETED"
	NotificationKindPitchClosed    = "PITCH_CLOSED"
	NotificationKindClientPortal   = "CLIENT_PORTAL"
	NotificationKindClosedEarly    = "SUBMISSIONS_CLOSED_EARLY"
	NotificationKindReopened       = "SUBMISSIONS_REOPENED"
)

// Notification delivery status constants
const (
	NotificationStatusPending = "PENDING"
	NotificationStatusSent    = "SENT"
	NotificationStatusFailed  = "FAILED"
)

// Rating bounds for completed pitches
const (
	RatingMin = 1
	RatingMax = 5
)
