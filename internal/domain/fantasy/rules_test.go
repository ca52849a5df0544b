package fantasy

import (
	"errors"
	"testing"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
)

func testPool() map[string]player.Player {
	pool := []player.Player{
		{ID: "gk1", Position: player.PositionGoalkeeper, Price: 500},
		{ID: "d1", Position: player.PositionDefender, Price: 500},
		{ID: "d2", Position: player.PositionDefender, Price: 500},
		{ID: "d3", Position: player.PositionDefender, Price: 500},
		{ID: "d4", Position: player.PositionDefender, Price: 500},
		{ID: "m1", Position: player.PositionMidfielder, Price: 1000},
		{ID: "m2", Position: player.PositionMidfielder, Price: 1000},
		{ID: "m3", Position: player.PositionMidfielder, Price: 1000},
		{ID: "m4", Position: player.PositionMidfielder, Price: 1000},
		{ID: "f1", Position: player.PositionForward, Price: 1000},
		{ID: "f2", Position: player.PositionForward, Price: 1000},
	}
	return player.IndexByID(pool)
}

func validCandidate() Candidate {
	return Candidate{"gk1", "d1", "d2", "d3", "d4", "m1", "m2", "m3", "m4", "f1", "f2"}
}

func TestValidate(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name      string
		mutate    func(*Candidate, map[string]player.Player, *Rules)
		wantRules []Rule
		targetErr error
	}{
		{
			name:   "valid squad",
			mutate: func(_ *Candidate, _ map[string]player.Player, _ *Rules) {},
		},
		{
			name: "empty slots",
			mutate: func(c *Candidate, _ map[string]player.Player, _ *Rules) {
				c[9] = ""
				c[10] = ""
			},
			wantRules: []Rule{RuleIncompleteSquad, RuleIncompleteSquad},
			targetErr: ErrIncompleteSquad,
		},
		{
			name: "duplicate player",
			mutate: func(c *Candidate, _ map[string]player.Player, _ *Rules) {
				c[2] = "d1"
			},
			wantRules: []Rule{RuleDuplicatePlayer},
			targetErr: ErrDuplicatePlayerInSquad,
		},
		{
			name: "position mismatch",
			mutate: func(c *Candidate, _ map[string]player.Player, _ *Rules) {
				c[0], c[1] = "d1", "gk1"
			},
			wantRules: []Rule{RulePositionMismatch, RulePositionMismatch},
			targetErr: ErrPositionMismatch,
		},
		{
			name: "unknown player",
			mutate: func(c *Candidate, _ map[string]player.Player, _ *Rules) {
				c[5] = "ghost"
			},
			wantRules: []Rule{RuleUnknownPlayer},
			targetErr: ErrUnknownPlayer,
		},
		{
			name: "budget exceeded",
			mutate: func(_ *Candidate, _ map[string]player.Player, r *Rules) {
				r.Budget = 8000
			},
			wantRules: []Rule{RuleBudgetExceeded},
			targetErr: ErrExceededBudget,
		},
		{
			name: "budget exactly met",
			mutate: func(_ *Candidate, _ map[string]player.Player, r *Rules) {
				r.Budget = 8500
			},
		},
		{
			name: "violations accumulate in rule order",
			mutate: func(c *Candidate, pool map[string]player.Player, r *Rules) {
				c[10] = ""
				c[3] = "d1"
				c[6] = "ghost"
				r.Budget = 100
			},
			wantRules: []Rule{RuleIncompleteSquad, RuleDuplicatePlayer, RuleUnknownPlayer, RuleBudgetExceeded},
			targetErr: ErrUnknownPlayer,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			candidate := validCandidate()
			pool := testPool()
			cfg := rules
			tc.mutate(&candidate, pool, &cfg)

			got := Validate(candidate, pool, cfg)
			if len(got.Violations) != len(tc.wantRules) {
				t.Fatalf("violations count mismatch: got=%d want=%d (%+v)", len(got.Violations), len(tc.wantRules), got.Violations)
			}
			for i, want := range tc.wantRules {
				if got.Violations[i].Rule != want {
					t.Fatalf("violation %d rule mismatch: got=%s want=%s", i, got.Violations[i].Rule, want)
				}
			}

			err := got.Err()
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected error %v, got %v", tc.targetErr, err)
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestValidateTotalCost(t *testing.T) {
	got := Validate(validCandidate(), testPool(), DefaultRules())
	if got.TotalCost != 8500 {
		t.Fatalf("unexpected total cost: %s", got.TotalCost)
	}
}

func TestCandidateFromIDs(t *testing.T) {
	c, err := CandidateFromIDs([]string{"gk1", "d1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c[0] != "gk1" || c[1] != "d1" || c[2] != "" {
		t.Fatalf("unexpected candidate: %v", c)
	}
	if got := len(c.PlayerIDs()); got != 2 {
		t.Fatalf("expected 2 filled slots, got %d", got)
	}

	if _, err := CandidateFromIDs(make([]string, 12)); !errors.Is(err, ErrIncompleteSquad) {
		t.Fatalf("expected ErrIncompleteSquad, got %v", err)
	}
}

func TestCandidateFromIDsTrimsWhitespace(t *testing.T) {
	ids := validCandidate().PlayerIDs()
	ids[0] = " " + ids[0]
	ids[9] = ids[9] + "\t"

	c, err := CandidateFromIDs(ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != validCandidate() {
		t.Fatalf("expected trimmed candidate %v, got %v", validCandidate(), c)
	}

	got := Validate(c, testPool(), DefaultRules())
	if !got.OK() {
		t.Fatalf("expected padded ids to validate, got %+v", got.Violations)
	}
}

func TestLockWindow(t *testing.T) {
	created := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	squad := NewSquad("s1", "u1", validCandidate(), created, DefaultRules())
	if err := squad.ValidateBasic(); err != nil {
		t.Fatalf("unexpected validate error: %v", err)
	}

	lock := squad.Lock()
	tests := []struct {
		name       string
		at         time.Time
		wantActive bool
	}{
		{name: "just after submit", at: created.Add(time.Minute), wantActive: true},
		{name: "23 hours later", at: created.Add(23 * time.Hour), wantActive: true},
		{name: "exactly at window end", at: created.Add(24 * time.Hour), wantActive: false},
		{name: "one second after window", at: created.Add(24*time.Hour + time.Second), wantActive: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := lock.ActiveAt(tc.at); got != tc.wantActive {
				t.Fatalf("active mismatch: got=%v want=%v", got, tc.wantActive)
			}
			remaining := lock.RemainingAt(tc.at)
			if tc.wantActive && remaining <= 0 {
				t.Fatalf("expected positive remaining, got %s", remaining)
			}
			if !tc.wantActive && remaining != 0 {
				t.Fatalf("expected zero remaining, got %s", remaining)
			}
		})
	}
}

func TestLockActiveErrorIsSquadLocked(t *testing.T) {
	err := error(&LockActiveError{
		LockedUntil: time.Date(2026, 1, 11, 12, 0, 0, 0, time.UTC),
		Remaining:   time.Hour,
	})
	if !errors.Is(err, ErrSquadLocked) {
		t.Fatalf("expected ErrSquadLocked, got %v", err)
	}
}
