package lifecycle

import "testing"

func TestTransitionDirection(t *testing.T) {
	table := DefaultPitchTable()

	tests := []struct {
		name    string
		current Status
		target  Status
		want    Direction
	}{
		{
			name:    "pending to in progress is forward",
			current: StatusPending,
			target:  StatusInProgress,
			want:    DirectionForward,
		},
		{
			name:    "pending to denied is forward",
			current: StatusPending,
			target:  StatusDenied,
			want:    DirectionForward,
		},
		{
			name:    "in progress to approved is forward",
			current: StatusInProgress,
			target:  StatusApproved,
			want:    DirectionForward,
		},
		{
			name:    "in progress to revisions requested is forward",
			current: StatusInProgress,
			target:  StatusRevisionsRequested,
			want:    DirectionForward,
		},
		{
			name:    "revisions requested to in progress is forward",
			current: StatusRevisionsRequested,
			target:  StatusInProgress,
			want:    DirectionForward,
		},
		{
			name:    "approved to completed is forward",
			current: StatusApproved,
			target:  StatusCompleted,
			want:    DirectionForward,
		},
		{
			name:    "in progress back to pending is backward",
			current: StatusInProgress,
			target:  StatusPending,
			want:    DirectionBackward,
		},
		{
			name:    "approved back to in progress is backward",
			current: StatusApproved,
			target:  StatusInProgress,
			want:    DirectionBackward,
		},
		{
			name:    "approved back to revisions requested is backward",
			current: StatusApproved,
			target:  StatusRevisionsRequested,
			want:    DirectionBackward,
		},
		{
			name:    "denied back to pending is backward",
			current: StatusDenied,
			target:  StatusPending,
			want:    DirectionBackward,
		},
		{
			name:    "pending straight to approved has no edge",
			current: StatusPending,
			target:  StatusApproved,
			want:    DirectionNone,
		},
		{
			name:    "pending straight to completed has no edge",
			current: StatusPending,
			target:  StatusCompleted,
			want:    DirectionNone,
		},
		{
			name:    "completed has no outgoing edges",
			current: StatusCompleted,
			target:  StatusPending,
			want:    DirectionNone,
		},
		{
			name:    "closed has no outgoing edges",
			current: StatusClosed,
			target:  StatusPending,
			want:    DirectionNone,
		},
		{
			name:    "self transition has no edge",
			current: StatusInProgress,
			target:  StatusInProgress,
			want:    DirectionNone,
		},
		{
			name:    "unknown status has no edge",
			current: Status("SOMETHING_ELSE"),
			target:  StatusInProgress,
			want:    DirectionNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TransitionDirection(tt.current, tt.target, table)
			if got != tt.want {
				t.Errorf("TransitionDirection(%s, %s) = %s, want %s",
					tt.current, tt.target, got, tt.want)
			}
		})
	}
}

func TestTransitionDirection_NilTable(t *testing.T) {
	if got := TransitionDirection(StatusPending, StatusInProgress, nil); got != DirectionNone {
		t.Errorf("TransitionDirection with nil table = %s, want NONE", got)
	}
}

func TestDirection_String(t *testing.T) {
	tests := []struct {
		direction Direction
		want      string
	}{
		{DirectionForward, "FORWARD"},
		{DirectionBackward, "BACKWARD"},
		{DirectionNone, "NONE"},
		{Direction(99), "NONE"},
	}

	for _, tt := range tests {
		if got := tt.direction.String(); got != tt.want {
			t.Errorf("Direction(%d).String() = %v, want %v", tt.direction, got, tt.want)
		}
	}
}
