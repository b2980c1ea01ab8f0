package booking

import (
	"testing"

	"github.com/MS0C54073/CarWashApp-sub001/internal/user"
)

func TestRoleMaySet(t *testing.T) {
	cases := []struct {
		role user.Role
		to   Status
		want bool
	}{
		{user.RoleClient, StatusCancelled, true},
		{user.RoleClient, StatusAccepted, false},
		{user.RoleClient, StatusPickedUp, false},

		{user.RoleDriver, StatusPickedUp, true},
		{user.RoleDriver, StatusAtWash, true},
		{user.RoleDriver, StatusDelivered, true},
		{user.RoleDriver, StatusCompleted, true},
		{user.RoleDriver, StatusAccepted, false},
		{user.RoleDriver, StatusWashingBay, false},

		{user.RoleCarwash, StatusAccepted, true},
		{user.RoleCarwash, StatusDeclined, true},
		{user.RoleCarwash, StatusWaitingBay, true},
		{user.RoleCarwash, StatusWashCompleted, true},
		{user.RoleCarwash, StatusPickedUp, false},
		{user.RoleCarwash, StatusCancelled, false},

		{user.RoleAdmin, StatusCancelled, true},
		{user.RoleAdmin, StatusWashingBay, true},
		{user.RoleSubadmin, StatusDeclined, true},
	}
	for _, c := range cases {
		if got := roleMaySet(c.role, c.to); got != c.want {
			t.Fatalf("%s set %s: expected %v, got %v", c.role, c.to, c.want, got)
		}
	}
}

// Cancel is a shared endpoint; gating happens per role inside transition.
func TestCancelRights(t *testing.T) {
	cases := []struct {
		role user.Role
		want bool
	}{
		{user.RoleClient, true},
		{user.RoleAdmin, true},
		{user.RoleSubadmin, true},
		{user.RoleDriver, false},
		{user.RoleCarwash, false},
	}
	for _, c := range cases {
		if got := roleMaySet(c.role, StatusCancelled); got != c.want {
			t.Fatalf("%s cancel: expected %v, got %v", c.role, c.want, got)
		}
	}
}

// Tracking links are revoked exactly when a booking reaches a terminal
// status; every other status keeps the link alive.
func TestTrackingEndsOnlyAtTerminalStatuses(t *testing.T) {
	revoked := map[Status]bool{
		StatusCompleted: true,
		StatusCancelled: true,
		StatusDeclined:  true,
	}
	for _, s := range []Status{
		StatusPending, StatusAccepted, StatusPickedUp, StatusAtWash,
		StatusWaitingBay, StatusWashingBay, StatusDryingBay, StatusWashCompleted,
		StatusDelivered, StatusCompleted, StatusCancelled, StatusDeclined,
	} {
		if IsTerminal(s) != revoked[s] {
			t.Fatalf("status %s: revoke expected %v", s, revoked[s])
		}
	}
}

func TestBookingVisibleTo(t *testing.T) {
	driverID := "drv-1"
	b := &Booking{ClientID: "cli-1", CarWashID: "cw-1", DriverID: &driverID}

	if !b.visibleTo(&user.User{ID: "cli-1", Role: user.RoleClient}) {
		t.Fatalf("owner client must see booking")
	}
	if b.visibleTo(&user.User{ID: "cli-2", Role: user.RoleClient}) {
		t.Fatalf("other client must not see booking")
	}
	if !b.visibleTo(&user.User{ID: "drv-1", Role: user.RoleDriver}) {
		t.Fatalf("assigned driver must see booking")
	}
	if b.visibleTo(&user.User{ID: "drv-2", Role: user.RoleDriver}) {
		t.Fatalf("other driver must not see booking")
	}

	unassigned := &Booking{ClientID: "cli-1", CarWashID: "cw-1"}
	if unassigned.visibleTo(&user.User{ID: "drv-1", Role: user.RoleDriver}) {
		t.Fatalf("driver must not see unassigned booking")
	}

	if !b.visibleTo(&user.User{ID: "cw-1", Role: user.RoleCarwash}) {
		t.Fatalf("carwash must see its booking")
	}
	if !b.visibleTo(&user.User{ID: "anyone", Role: user.RoleAdmin}) {
		t.Fatalf("admin must see all bookings")
	}
}
