package payment

import "testing"

func TestParseMethod_WireValues(t *testing.T) {
	for _, s := range []string{"cash", "card", "mobile_money", "bank_transfer"} {
		if _, err := ParseMethod(s); err != nil {
			t.Fatalf("expected %q to parse: %v", s, err)
		}
	}
	if _, err := ParseMethod("crypto"); err == nil {
		t.Fatalf("expected error for unknown method")
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusRefunded, false},
		{StatusFailed, StatusPending, true},
		{StatusFailed, StatusPaid, true},
		{StatusPaid, StatusRefunded, true},
		{StatusPaid, StatusPending, false},
		{StatusRefunded, StatusPaid, false},
		{StatusRefunded, StatusPending, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Fatalf("%s -> %s: expected %v, got %v", c.from, c.to, c.want, got)
		}
	}
}
