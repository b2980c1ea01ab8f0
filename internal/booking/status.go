package booking

import "fmt"

type Status string

const (
	StatusPending       Status = "pending"
	StatusAccepted      Status = "accepted"
	StatusDeclined      Status = "declined"
	StatusPickedUp      Status = "picked_up"
	StatusAtWash        Status = "at_wash"
	StatusWaitingBay    Status = "waiting_bay"
	StatusWashingBay    Status = "washing_bay"
	StatusDryingBay     Status = "drying_bay"
	StatusWashCompleted Status = "wash_completed"
	StatusDelivered     Status = "delivered"
	StatusCompleted     Status = "completed"
	StatusCancelled     Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusDeclined, StatusPickedUp,
		StatusAtWash, StatusWaitingBay, StatusWashingBay, StatusDryingBay,
		StatusWashCompleted, StatusDelivered, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

// The lifecycle is a fixed linear order; every status has at most one
// forward successor.
var nextStatus = map[Status]Status{
	StatusPending:       StatusAccepted,
	StatusAccepted:      StatusPickedUp,
	StatusPickedUp:      StatusAtWash,
	StatusAtWash:        StatusWaitingBay,
	StatusWaitingBay:    StatusWashingBay,
	StatusWashingBay:    StatusDryingBay,
	StatusDryingBay:     StatusWashCompleted,
	StatusWashCompleted: StatusDelivered,
	StatusDelivered:     StatusCompleted,
}

// NextStatus returns the single legal forward step, or false for terminal
// and absorbing states.
func NextStatus(from Status) (Status, bool) {
	n, ok := nextStatus[from]
	return n, ok
}

func IsTerminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusDeclined:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from one status to
// another: either the designated next step, or into an absorbing state
// (cancelled/declined) from any non-terminal status.
func CanTransition(from, to Status) bool {
	if IsTerminal(from) {
		return false
	}
	if to == StatusCancelled || to == StatusDeclined {
		return true
	}
	n, ok := nextStatus[from]
	return ok && n == to
}
