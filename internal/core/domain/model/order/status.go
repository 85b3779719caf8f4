package order

import (
	"fmt"

	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state machine
// with a fixed transition graph; every status except the terminal ones is reachable
// only from specific predecessors.
//
// Status values are persisted and transmitted as lowercase strings ("pending",
// "property_confirmed", ...). The zero value StatusUnknown is invalid and helps
// catch uninitialized statuses.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is the initial status after the customer creates an order.
	StatusPending

	// StatusPropertyConfirmed means a property manager of the order's community
	// accepted the pickup.
	StatusPropertyConfirmed

	// StatusTransportAssigned means a dispatcher allocated a driver and a vehicle.
	StatusTransportAssigned

	// StatusTransporting means the driver picked the waste up and is en route.
	StatusTransporting

	// StatusDelivered means the load arrived at the recycling station; the driver
	// and vehicle are released.
	StatusDelivered

	// StatusRecyclingConfirmed means the recycling company accepted the load.
	StatusRecyclingConfirmed

	// StatusCompleted is the terminal success status.
	StatusCompleted

	// StatusCancelled is the terminal status for orders abandoned before transport.
	StatusCancelled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusPending:            "pending",
		StatusPropertyConfirmed:  "property_confirmed",
		StatusTransportAssigned:  "transport_assigned",
		StatusTransporting:       "transporting",
		StatusDelivered:          "delivered",
		StatusRecyclingConfirmed: "recycling_confirmed",
		StatusCompleted:          "completed",
		StatusCancelled:          "cancelled",
	}
}

// transitions is the adjacency of the status graph. A target missing from the
// current status's list is an invalid transition, including target == current.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:            {StatusPropertyConfirmed, StatusCancelled},
		StatusPropertyConfirmed:  {StatusTransportAssigned, StatusCancelled},
		StatusTransportAssigned:  {StatusTransporting},
		StatusTransporting:       {StatusDelivered},
		StatusDelivered:          {StatusRecyclingConfirmed},
		StatusRecyclingConfirmed: {StatusCompleted},
		StatusCompleted:          {},
		StatusCancelled:          {},
	}
}

// AllStatuses returns every valid status in lifecycle order.
// Used by exhaustive transition tests and request validation.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusPropertyConfirmed,
		StatusTransportAssigned,
		StatusTransporting,
		StatusDelivered,
		StatusRecyclingConfirmed,
		StatusCompleted,
		StatusCancelled,
	}
}

// StatusFromString parses the wire representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate reports whether the status is one of the defined values.
func (s Status) Validate() error {
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase wire representation, or "unknown".
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition leaves the status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the graph defines an edge from s to target.
// Resubmitting the current status is not a defined edge.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransitionError unless the graph defines
// an edge from s to target. This precondition binds every actor including
// superusers: nobody skips states.
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return errs.NewInvalidTransitionErrorWithCause(s.String(), target.String(), err)
	}
	if !s.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return nil
}
