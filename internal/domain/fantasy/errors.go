package fantasy

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrIncompleteSquad        = errors.New("incomplete squad")
	ErrDuplicatePlayerInSquad = errors.New("duplicate player in squad")
	ErrPositionMismatch       = errors.New("player position does not match slot")
	ErrUnknownPlayer          = errors.New("unknown player")
	ErrExceededBudget         = errors.New("budget cap exceeded")
	ErrSquadLocked            = errors.New("squad is locked")
	ErrInsufficientPlayers    = errors.New("not enough players to fill squad quotas")
)

// ValidationError carries every violated squad rule.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "invalid squad: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() []error {
	out := make([]error, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Rule.sentinel())
	}
	return out
}

// LockActiveError rejects a submission made inside the lock window.
type LockActiveError struct {
	LockedUntil time.Time
	Remaining   time.Duration
}

func (e *LockActiveError) Error() string {
	return fmt.Sprintf("squad is locked until %s (%s remaining)",
		e.LockedUntil.UTC().Format(time.RFC3339), e.Remaining.Round(time.Second))
}

func (e *LockActiveError) Is(target error) bool {
	return target == ErrSquadLocked
}
