package entity

import "time"

// Project owns zero or more pitches. Contest projects collect competing
// entries; client projects additionally expose a signed portal link to the
// end client on completion.
type Project struct {
	ID                       int64      `json:"id"`
	OwnerUserID              int64      `json:"owner_user_id"`
	Kind                     string     `json:"kind"`
	Status                   string     `json:"status"`
	Title                    string     `json:"title"`
	BudgetCents              int64      `json:"budget_cents"`
	ClientUserID             *int64     `json:"client_user_id,omitempty"`
	SubmissionDeadline       *time.Time `json:"submission_deadline,omitempty"`
	SubmissionsClosedEarlyAt *time.Time `json:"submissions_closed_early_at,omitempty"`
	SubmissionsClosedEarlyBy *int64     `json:"submissions_closed_early_by,omitempty"`
	EarlyClosureReason       string     `json:"early_closure_reason,omitempty"`
	JudgingFinalized         bool       `json:"judging_finalized"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

// IsContest reports whether the project is contest-kind.
func (p *Project) IsContest() bool {
	return p.Kind == ProjectKindContest
}

// IsStandard reports whether the project is standard-kind. Only standard
// projects cascade-close sibling pitches on completion.
func (p *Project) IsStandard() bool {
	return p.Kind == ProjectKindStandard
}

// WasClosedEarly reports whether submissions were closed ahead of the
// deadline and have not been reopened since.
func (p *Project) WasClosedEarly() bool {
	return p.SubmissionsClosedEarlyAt != nil
}

// WorkflowType maps the project kind to the payout hold-day table key.
func (p *Project) WorkflowType() string {
	switch p.Kind {
	case ProjectKindContest:
		return WorkflowTypeContest
	case ProjectKindClient:
		return WorkflowTypeClient
	default:
		return WorkflowTypeStandard
	}
}

// PitchEvent is one immutable entry in a pitch's history trail.
type PitchEvent struct {
	ID             int64     `json:"id"`
	PitchID        int64     `json:"pitch_id"`
	ActorUserID    int64     `json:"actor_user_id"`
	EventType      string    `json:"event_type"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Rating         *int      `json:"rating,omitempty"`
	Comment        string    `json:"comment,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ProjectEvent is one immutable entry in a project's audit trail.
type ProjectEvent struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project_id"`
	ActorUserID int64     `json:"actor_user_id"`
	EventType   string    `json:"event_type"`
	EntryCount  int       `json:"entry_count"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
