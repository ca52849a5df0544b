package match

import (
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	for raw, want := range map[string]Status{
		"":          StatusUpcoming,
		"Upcoming":  StatusUpcoming,
		" live ":    StatusLive,
		"COMPLETED": StatusCompleted,
	} {
		got, err := ParseStatus(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: got=%s want=%s", raw, got, want)
		}
	}
	if _, err := ParseStatus("postponed"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestMatchValidate(t *testing.T) {
	kickoff := time.Date(2026, 10, 18, 19, 30, 0, 0, time.UTC)
	valid := Match{ID: "m1", HomeTeam: "FC Goa", AwayTeam: "Bengaluru FC", KickoffAt: kickoff}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid match, got %v", err)
	}

	same := valid
	same.AwayTeam = "fc goa"
	if err := same.Validate(); err == nil {
		t.Fatalf("expected error for identical teams")
	}

	if !valid.SameDay(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), time.UTC) {
		t.Fatalf("expected same day")
	}
	if valid.SameDay(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), time.UTC) {
		t.Fatalf("expected different day")
	}
}
