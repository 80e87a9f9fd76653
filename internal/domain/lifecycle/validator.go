package lifecycle

// Direction classifies a requested status move relative to the table.
type Direction int

const (
	// DirectionNone means no edge exists between the two statuses.
	DirectionNone Direction = iota
	// DirectionForward means the move advances the pitch.
	DirectionForward
	// DirectionBackward means the move reverts the pitch.
	DirectionBackward
)

// String returns the string representation of the direction
func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "FORWARD"
	case DirectionBackward:
		return "BACKWARD"
	default:
		return "NONE"
	}
}

// TransitionDirection looks up the edge (current, target) in the table and
// returns its direction, or DirectionNone when no such edge exists. It is a
// pure function; converting DirectionNone into an error is the caller's job.
func TransitionDirection(current, target Status, table *TransitionTable) Direction {
	if table == nil {
		return DirectionNone
	}
	if table.Forward[current].Contains(target) {
		return DirectionForward
	}
	if table.Backward[current].Contains(target) {
		return DirectionBackward
	}
	return DirectionNone
}
