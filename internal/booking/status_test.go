package booking

import "testing"

var forwardOrder = []Status{
	StatusPending, StatusAccepted, StatusPickedUp, StatusAtWash,
	StatusWaitingBay, StatusWashingBay, StatusDryingBay, StatusWashCompleted,
	StatusDelivered, StatusCompleted,
}

func TestNextStatus_LinearOrder(t *testing.T) {
	for i := 0; i < len(forwardOrder)-1; i++ {
		from, want := forwardOrder[i], forwardOrder[i+1]
		got, ok := NextStatus(from)
		if !ok {
			t.Fatalf("%s: expected a next status", from)
		}
		if got != want {
			t.Fatalf("%s: expected next %s, got %s", from, want, got)
		}
	}
}

func TestNextStatus_TerminalsHaveNoNext(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled, StatusDeclined} {
		if _, ok := NextStatus(s); ok {
			t.Fatalf("%s: expected no next status", s)
		}
	}
}

func TestCanTransition_RejectsSkipsAndReversals(t *testing.T) {
	// Only the designated next status (or an absorbing state) is accepted.
	for i, from := range forwardOrder[:len(forwardOrder)-1] {
		for j, to := range forwardOrder {
			legal := j == i+1
			if got := CanTransition(from, to); got != legal {
				t.Fatalf("%s -> %s: expected %v, got %v", from, to, legal, got)
			}
		}
	}
}

func TestCanTransition_SkipPickupRejected(t *testing.T) {
	// pending must go through accepted before picked_up.
	if CanTransition(StatusPending, StatusPickedUp) {
		t.Fatalf("pending -> picked_up must be rejected")
	}
	if !CanTransition(StatusPending, StatusAccepted) {
		t.Fatalf("pending -> accepted must be allowed")
	}
}

func TestCanTransition_AbsorbingFromAnyNonTerminal(t *testing.T) {
	for _, from := range forwardOrder[:len(forwardOrder)-1] {
		if !CanTransition(from, StatusCancelled) {
			t.Fatalf("%s -> cancelled must be allowed", from)
		}
		if !CanTransition(from, StatusDeclined) {
			t.Fatalf("%s -> declined must be allowed", from)
		}
	}
}

func TestCanTransition_TerminalsAreAbsorbing(t *testing.T) {
	all := append([]Status{StatusCancelled, StatusDeclined}, forwardOrder...)
	for _, from := range []Status{StatusCompleted, StatusCancelled, StatusDeclined} {
		for _, to := range all {
			if CanTransition(from, to) {
				t.Fatalf("%s -> %s: terminal states accept no transition", from, to)
			}
		}
	}
}

func TestParseStatus_ExactWireSpellings(t *testing.T) {
	wire := []string{
		"pending", "accepted", "declined", "picked_up", "at_wash",
		"waiting_bay", "washing_bay", "drying_bay", "wash_completed",
		"delivered", "completed", "cancelled",
	}
	for _, s := range wire {
		if _, err := ParseStatus(s); err != nil {
			t.Fatalf("expected %q to parse: %v", s, err)
		}
	}
	if _, err := ParseStatus("PickedUp"); err == nil {
		t.Fatalf("expected error for non-wire spelling")
	}
}
