package domain

import (
	"strings"

	"github.com/pkg/errors"
)

// Status represents the lifecycle status of an offer
type Status string

const (
	StatusOffered  Status = "offered"
	StatusAssigned Status = "assigned"
	StatusCanceled Status = "canceled"
)

// ValidStatuses lists every status an offer can hold
var ValidStatuses = []Status{StatusOffered, StatusAssigned, StatusCanceled}

// allowedTransitions is the whole state machine. Anything absent is denied,
// including self transitions and every transition out of canceled.
var allowedTransitions = map[Status][]Status{
	StatusOffered:  {StatusAssigned, StatusCanceled},
	StatusAssigned: {StatusCanceled},
}

func normalize(status string) Status {
	return Status(strings.ToLower(strings.TrimSpace(status)))
}

// IsValid reports whether status names a known offer status, ignoring case
func IsValid(status string) bool {
	s := normalize(status)
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// CanTransition reports whether an offer may move from current to target.
// It is total over all strings: unknown or empty values are denied.
func CanTransition(current, target string) bool {
	from, to := normalize(current), normalize(target)
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ParseStatus returns the canonical lowercase status
func ParseStatus(status string) (Status, error) {
	if !IsValid(status) {
		return "", errors.Errorf("invalid offer status %q", status)
	}
	return normalize(status), nil
}

// CanTransitionTo is CanTransition for typed statuses
func (s Status) CanTransitionTo(target Status) bool {
	return CanTransition(string(s), string(target))
}

// IsTerminal reports whether no transition leaves this status
func (s Status) IsTerminal() bool {
	return len(allowedTransitions[normalize(string(s))]) == 0
}

func (s Status) String() string {
	return string(s)
}
