package lifecycle

import "fmt"

// StatusSet is an unordered set of statuses.
type StatusSet map[Status]struct{}

// NewStatusSet builds a set from the given statuses.
func NewStatusSet(statuses ...Status) StatusSet {
	set := make(StatusSet, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}

// Contains reports whether the set contains the given status.
func (s StatusSet) Contains(status Status) bool {
	_, ok := s[status]
	return ok
}

// TransitionTable is a directed graph of legal status moves, partitioned
// into forward edges (the pitch advancing) and backward edges (the pitch
// being reverted). The partition lets callers layer different authorization
// rules onto each direction.
type TransitionTable struct {
	Forward  map[Status]StatusSet
	Backward map[Status]StatusSet
}

// Validate checks that every status appearing in the table is a valid
// lifecycle status and that no terminal status has an outgoing forward edge.
func (t *TransitionTable) Validate() error {
	for _, edges := range []map[Status]StatusSet{t.Forward, t.Backward} {
		for from, targets := range edges {
			if !from.IsValid() {
				return fmt.Errorf("%w: %s", ErrInvalidStatus, from)
			}
			for to := range targets {
				if !to.IsValid() {
					return fmt.Errorf("%w: %s", ErrInvalidStatus, to)
				}
			}
		}
	}
	for from := range t.Forward {
		if from.IsTerminal() {
			return fmt.Errorf("%w: terminal status %s has forward edges", ErrInvalidStatus, from)
		}
	}
	return nil
}

// DefaultPitchTable returns the documented edge set for the pitch lifecycle.
// Forward edges advance a pitch toward completion; backward edges revert it
// and are reserved for the project owner.
func DefaultPitchTable() *TransitionTable {
	return &TransitionTable{
		Forward: map[Status]StatusSet{
			StatusPending:            NewStatusSet(StatusInProgress, StatusDenied),
			StatusInProgress:         NewStatusSet(StatusApproved, StatusRevisionsRequested, StatusDenied),
			StatusRevisionsRequested: NewStatusSet(StatusInProgress, StatusDenied),
			StatusApproved:           NewStatusSet(StatusCompleted),
		},
		Backward: map[Status]StatusSet{
			StatusInProgress:         NewStatusSet(StatusPending),
			StatusApproved:           NewStatusSet(StatusInProgress, StatusRevisionsRequested),
			StatusRevisionsRequested: NewStatusSet(StatusPending),
			StatusDenied:             NewStatusSet(StatusPending),
		},
	}
}
