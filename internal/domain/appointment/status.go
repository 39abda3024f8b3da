package appointment

import "github.com/BruksfildServices01/barbershop-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var allStatuses = []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

func (s Status) Valid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.Validation("invalid_status", "Status must be one of pending, confirmed, cancelled, completed.")
	}
	return s, nil
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Transitions
// ===============================

// TransitionTable decides which from→to pairs are allowed, independent of who asks.
type TransitionTable interface {
	Allowed(from, to Status) bool
}

type permissive struct{}

func (permissive) Allowed(from, to Status) bool {
	return to.Valid()
}

// PermissiveTransitions lets any valid status move to any valid status.
var PermissiveTransitions TransitionTable = permissive{}

type pairTable struct {
	next map[Status][]Status
}

func (p *pairTable) Allowed(from, to Status) bool {
	for _, next := range p.next[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StrictTransitions treats cancelled and completed as terminal.
var StrictTransitions TransitionTable = &pairTable{next: map[Status][]Status{
	StatusPending:   {StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted},
	StatusConfirmed: {StatusConfirmed, StatusPending, StatusCancelled, StatusCompleted},
	StatusCancelled: {StatusCancelled},
	StatusCompleted: {StatusCompleted},
}}

func TransitionsFor(strict bool) TransitionTable {
	if strict {
		return StrictTransitions
	}
	return PermissiveTransitions
}
