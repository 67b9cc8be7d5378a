package order

import (
	"fmt"
	"strings"

	"orders/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
type Status int

const (
	// Unknown is the zero value and stands for anything not recognised.
	Unknown Status = iota
	Created
	Paid
	Fulfilled
	Cancelled
)

var statusNames = map[Status]string{
	Created:   "CREATED",
	Paid:      "PAID",
	Fulfilled: "FULFILLED",
	Cancelled: "CANCELLED",
}

// transitions is the only copy of the lifecycle table.
var transitions = map[Status]map[Status]struct{}{
	Created: {Paid: {}, Cancelled: {}},
	Paid:    {Fulfilled: {}, Cancelled: {}},
}

// ParseStatus maps a status name to its value, ignoring case and surrounding
// blanks. Anything else yields Unknown, never an error.
func ParseStatus(s string) Status {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, n := range statusNames {
		if n == name {
			return status
		}
	}
	return Unknown
}

// IsTransitionAllowed reports whether an order in current may move to
// requested. It is false for identity moves, for moves out of a terminal
// state and whenever either side is Unknown.
func IsTransitionAllowed(current, requested Status) bool {
	_, ok := transitions[current][requested]
	return ok
}

// String returns the wire name, "UNKNOWN" for unrecognised values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Fulfilled || s == Cancelled
}
