package entity

import "time"

// Workflow type constants for the payout hold-day table
const (
	WorkflowTypeStandard = "STANDARD"
	WorkflowTypeContest  = "CONTEST"
	WorkflowTypeClient   = "CLIENT"
)

// PayoutHoldPolicy is the single current hold policy. It is loaded through
// the PolicyStore and passed explicitly into every calculation; nothing in
// the core reads it from a global.
type PayoutHoldPolicy struct {
	Enabled             bool           `json:"enabled"`
	MinimumHoldHours    int            `json:"minimum_hold_hours"`
	BusinessDaysOnly    bool           `json:"business_days_only"`
	ProcessingTimeOfDay string         `json:"processing_time_of_day"`
	AllowAdminBypass    bool           `json:"allow_admin_bypass"`
	RequireBypassReason bool           `json:"require_bypass_reason"`
	AuditBypass         bool           `json:"audit_bypass"`
	HoldDays            map[string]int `json:"hold_days"`
	DefaultHoldDays     int            `json:"default_hold_days"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// HoldDaysFor returns the hold-day count for the given workflow type,
// falling back to the policy default for unknown types.
func (p *PayoutHoldPolicy) HoldDaysFor(workflowType string) int {
	if days, ok := p.HoldDays[workflowType]; ok {
		return days
	}
	return p.DefaultHoldDays
}

// PayoutSchedule records when funds for a completed pitch become payable.
type PayoutSchedule struct {
	ID              int64      `json:"id"`
	PitchID         int64      `json:"pitch_id"`
	ProjectID       int64      `json:"project_id"`
	WorkflowType    string     `json:"workflow_type"`
	AmountCents     int64      `json:"amount_cents"`
	HoldReleaseDate time.Time  `json:"hold_release_date"`
	HoldBypassed    bool       `json:"hold_bypassed"`
	BypassReason    string     `json:"bypass_reason,omitempty"`
	BypassAdminID   *int64     `json:"bypass_admin_id,omitempty"`
	BypassedAt      *time.Time `json:"bypassed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
