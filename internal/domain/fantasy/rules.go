package fantasy

import (
	"fmt"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
)

// Rules stores fantasy roster validation parameters.
type Rules struct {
	Budget     player.Money
	LockWindow time.Duration
}

func DefaultRules() Rules {
	return Rules{
		Budget:     100 * player.MoneyScale,
		LockWindow: 24 * time.Hour,
	}
}

// Rule names one squad constraint.
type Rule string

const (
	RuleIncompleteSquad  Rule = "incomplete_squad"
	RuleDuplicatePlayer  Rule = "duplicate_player"
	RuleUnknownPlayer    Rule = "unknown_player"
	RulePositionMismatch Rule = "position_mismatch"
	RuleBudgetExceeded   Rule = "budget_exceeded"
)

func (r Rule) sentinel() error {
	switch r {
	case RuleIncompleteSquad:
		return ErrIncompleteSquad
	case RuleDuplicatePlayer:
		return ErrDuplicatePlayerInSquad
	case RuleUnknownPlayer:
		return ErrUnknownPlayer
	case RulePositionMismatch:
		return ErrPositionMismatch
	default:
		return ErrExceededBudget
	}
}

// Violation is one broken rule. Slot is -1 when the rule is squad-wide.
type Violation struct {
	Rule     Rule
	Slot     int
	PlayerID string
	Message  string
}

// Validation is the outcome of checking a candidate squad.
type Validation struct {
	Violations []Violation
	TotalCost  player.Money
}

func (v Validation) OK() bool {
	return len(v.Violations) == 0
}

func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return &ValidationError{Violations: append([]Violation(nil), v.Violations...)}
}

// Validate checks a candidate against slot quotas, duplicates, slot positions
// and the budget, in that order, collecting every violation.
func Validate(candidate Candidate, players map[string]player.Player, rules Rules) Validation {
	var out Validation

	for idx, playerID := range candidate {
		if playerID == "" {
			pos, _ := SlotPosition(idx)
			out.Violations = append(out.Violations, Violation{
				Rule:    RuleIncompleteSquad,
				Slot:    idx,
				Message: fmt.Sprintf("slot %d (%s) is empty", idx, pos),
			})
		}
	}

	firstSlot := make(map[string]int, SquadSize)
	for idx, playerID := range candidate {
		if playerID == "" {
			continue
		}
		if first, exists := firstSlot[playerID]; exists {
			out.Violations = append(out.Violations, Violation{
				Rule:     RuleDuplicatePlayer,
				Slot:     idx,
				PlayerID: playerID,
				Message:  fmt.Sprintf("player %s in slot %d already selected in slot %d", playerID, idx, first),
			})
			continue
		}
		firstSlot[playerID] = idx
	}

	for idx, playerID := range candidate {
		if playerID == "" {
			continue
		}
		want, _ := SlotPosition(idx)
		p, ok := players[playerID]
		if !ok {
			out.Violations = append(out.Violations, Violation{
				Rule:     RuleUnknownPlayer,
				Slot:     idx,
				PlayerID: playerID,
				Message:  fmt.Sprintf("player %s in slot %d does not exist", playerID, idx),
			})
			continue
		}
		if p.Position != want {
			out.Violations = append(out.Violations, Violation{
				Rule:     RulePositionMismatch,
				Slot:     idx,
				PlayerID: playerID,
				Message:  fmt.Sprintf("slot %d requires %s, player %s is %s", idx, want, playerID, p.Position),
			})
		}
	}

	for _, playerID := range candidate {
		if p, ok := players[playerID]; ok {
			out.TotalCost += p.Price
		}
	}
	if out.TotalCost > rules.Budget {
		out.Violations = append(out.Violations, Violation{
			Rule:    RuleBudgetExceeded,
			Slot:    -1,
			Message: fmt.Sprintf("total cost %s exceeds budget %s", out.TotalCost, rules.Budget),
		})
	}

	return out
}
