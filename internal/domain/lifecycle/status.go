package lifecycle

// Status represents a pitch status in the submission lifecycle
type Status string

const (
	StatusPending            Status = "PENDING"
	StatusInProgress         Status = "IN_PROGRESS"
	StatusApproved           Status = "APPROVED"
	StatusRevisionsRequested Status = "REVISIONS_REQUESTED"
	StatusDenied             Status = "DENIED"
	StatusCompleted          Status = "COMPLETED"
	StatusClosed             Status = "CLOSED"
)

var validStatuses = map[Status]bool{
	StatusPending:            true,
	StatusInProgress:         true,
	StatusApproved:           true,
	StatusRevisionsRequested: true,
	StatusDenied:             true,
	StatusCompleted:          true,
	StatusClosed:             true,
}

var terminalStatuses = map[Status]bool{
	StatusCompleted: true,
	StatusClosed:    true,
}

// IsTerminal returns true if the status is terminal (no further transitions allowed)
func (s Status) IsTerminal() bool {
	return terminalStatuses[s]
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is a valid pitch status
func (s Status) IsValid() bool {
	return validStatuses[s]
}
