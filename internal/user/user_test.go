package user

import "testing"

func TestParseRole(t *testing.T) {
	for _, s := range []string{"client", "driver", "carwash", "admin", "subadmin"} {
		if _, err := ParseRole(s); err != nil {
			t.Fatalf("expected %q to parse: %v", s, err)
		}
	}
	if _, err := ParseRole("superadmin"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestCanDecide_OnlyFromPending(t *testing.T) {
	if !CanDecide(ApprovalPending, ApprovalApproved) {
		t.Fatalf("pending -> approved must be allowed")
	}
	if !CanDecide(ApprovalPending, ApprovalRejected) {
		t.Fatalf("pending -> rejected must be allowed")
	}
	if CanDecide(ApprovalApproved, ApprovalRejected) {
		t.Fatalf("approved is final")
	}
	if CanDecide(ApprovalRejected, ApprovalApproved) {
		t.Fatalf("rejected is final")
	}
	if CanDecide(ApprovalPending, ApprovalPending) {
		t.Fatalf("pending -> pending is not a decision")
	}
}

func TestHashPassword_RejectsShort(t *testing.T) {
	if _, err := HashPassword("short"); err == nil {
		t.Fatalf("expected error for short password")
	}
}

func TestHashCheckPassword_RoundTrip(t *testing.T) {
	h, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(h, "correct horse battery") {
		t.Fatalf("expected password to verify")
	}
	if CheckPassword(h, "wrong password!") {
		t.Fatalf("expected mismatch to fail")
	}
}
