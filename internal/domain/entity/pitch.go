package entity

import "time"

// Pitch represents a single unit of submitted work attached to a project.
type Pitch struct {
	ID            int64      `json:"id"`
	ProjectID     int64      `json:"project_id"`
	OwnerUserID   int64      `json:"owner_user_id"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	Title         string     `json:"title"`
	Feedback      string     `json:"feedback,omitempty"`
	Rating        *int       `json:"rating,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsFinalized reports whether payment has already been committed for this
// pitch. A finalized pitch can never be completed again.
func (p *Pitch) IsFinalized() bool {
	return p.PaymentStatus == PaymentStatusPaid || p.PaymentStatus == PaymentStatusProcessing
}

// PitchSnapshot is the review record captured when a pitch entered review.
type PitchSnapshot struct {
	ID        int64     `json:"id"`
	PitchID   int64     `json:"pitch_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Actor identifies a user performing an operation. Admin capability is
// resolved once at the boundary, never re-derived inside business logic.
type Actor struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}
