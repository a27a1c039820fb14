package bookingRepo

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/bson"
)

func TestIsExclusionViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"exclusion", &pgconn.PgError{Code: "23P01"}, true},
		{"wrapped exclusion", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"}), true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		if got := isExclusionViolation(tc.err); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestOverlapFilterUsesHalfOpenBounds(t *testing.T) {
	start := mustTime(t, "2025-03-03T09:00:00Z")
	end := mustTime(t, "2025-03-03T09:30:00Z")
	f := overlapFilter("p1", start, end)

	if f["providerId"] != "p1" {
		t.Fatalf("expected providerId filter, got %v", f["providerId"])
	}
	startCond, ok := f["bookingStart"].(bson.M)
	if !ok {
		t.Fatalf("unexpected bookingStart condition type %T", f["bookingStart"])
	}
	if got := startCond["$lt"]; got != end {
		t.Fatalf("expected bookingStart < end, got %v", got)
	}
	endCond := f["bookingEnd"].(bson.M)
	if got := endCond["$gt"]; got != start {
		t.Fatalf("expected bookingEnd > start, got %v", got)
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}
