package entity

import "time"

// DeliveryNotification is the persisted record of one best-effort
// notification attempt. Delivery failures are recorded, never propagated to
// the operation that triggered the fan-out.
type DeliveryNotification struct {
	ID              int64      `json:"id"`
	Kind            string     `json:"kind"`
	RecipientUserID int64      `json:"recipient_user_id"`
	PitchID         *int64     `json:"pitch_id,omitempty"`
	ProjectID       *int64     `json:"project_id,omitempty"`
	Payload         string     `json:"payload"`
	Status          string     `json:"status"`
	ErrorMsg        string     `json:"error_msg,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	SentAt          *time.Time `json:"sent_at,omitempty"`
}
