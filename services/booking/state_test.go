package booking

import (
	"testing"

	"bookly/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.BookingStatus
		want     bool
	}{
		{models.BookingPending, models.BookingAccepted, true},
		{models.BookingPending, models.BookingRejected, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingPending, models.BookingCompleted, false},
		{models.BookingAccepted, models.BookingCompleted, true},
		{models.BookingAccepted, models.BookingCancelled, true},
		{models.BookingAccepted, models.BookingRejected, false},
		{models.BookingAccepted, models.BookingPending, false},
		{models.BookingCancelled, models.BookingAccepted, false},
		{models.BookingRejected, models.BookingAccepted, false},
		{models.BookingCompleted, models.BookingCancelled, false},
		{models.BookingPending, models.BookingPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestTerminalStatusesHaveNoEdges(t *testing.T) {
	all := []models.BookingStatus{
		models.BookingPending, models.BookingAccepted, models.BookingRejected,
		models.BookingCompleted, models.BookingCancelled,
	}
	for _, from := range all {
		if !from.IsTerminal() {
			continue
		}
		for _, to := range all {
			if CanTransition(from, to) {
				t.Fatalf("terminal status %s must not move to %s", from, to)
			}
		}
	}
}

func TestCanActorTransition(t *testing.T) {
	b := &models.Booking{UserID: "u1", ProviderID: "p1"}
	cases := []struct {
		name  string
		actor models.Actor
		to    models.BookingStatus
		want  bool
	}{
		{"owning provider accepts", models.Actor{ID: "p1", Role: models.RoleProvider}, models.BookingAccepted, true},
		{"other provider accepts", models.Actor{ID: "p2", Role: models.RoleProvider}, models.BookingAccepted, false},
		{"admin completes", models.Actor{ID: "root", Role: models.RoleAdmin}, models.BookingCompleted, true},
		{"user cancels", models.Actor{ID: "u1", Role: models.RoleUser}, models.BookingCancelled, true},
		{"user accepts", models.Actor{ID: "u1", Role: models.RoleUser}, models.BookingAccepted, false},
		{"other user cancels", models.Actor{ID: "u2", Role: models.RoleUser}, models.BookingCancelled, false},
		{"user id used as provider", models.Actor{ID: "u1", Role: models.RoleProvider}, models.BookingAccepted, false},
	}
	for _, tc := range cases {
		if got := canActorTransition(tc.actor, b, tc.to); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
