package models

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusPending, StatusDone, true},
		{StatusPending, StatusCancelled, true},
		{StatusDone, StatusCancelled, false},
		{StatusDone, StatusPending, false},
		{StatusCancelled, StatusDone, false},
		{StatusCancelled, StatusPending, false},
		{StatusPending, StatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	if StatusPending.Terminal() {
		t.Error("PENDING must not be terminal")
	}
	if !StatusDone.Terminal() || !StatusCancelled.Terminal() {
		t.Error("DONE and CANCELLED must be terminal")
	}
}

func TestParseRole(t *testing.T) {
	if role, ok := ParseRole(""); !ok || role != RoleHelper {
		t.Errorf("empty role should default to HELPER, got %q ok=%v", role, ok)
	}
	if role, ok := ParseRole("ADMIN"); !ok || role != RoleAdmin {
		t.Errorf("ADMIN should parse, got %q ok=%v", role, ok)
	}
	if _, ok := ParseRole("SUPER"); ok {
		t.Error("unknown role must be rejected")
	}
}
