package fantasy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
)

func suggestPool(price player.Money) []player.Player {
	var out []player.Player
	add := func(pos player.Position, n int) {
		for i := 0; i < n; i++ {
			out = append(out, player.Player{
				ID:       fmt.Sprintf("%s-%d", pos, i),
				Position: pos,
				Price:    price,
				Points:   10 * (n - i),
			})
		}
	}
	add(player.PositionGoalkeeper, 2)
	add(player.PositionDefender, 5)
	add(player.PositionMidfielder, 5)
	add(player.PositionForward, 3)
	return out
}

func TestRating(t *testing.T) {
	got := Rating(player.Player{Points: 10, Price: 1000})
	// 15 * (1 + 1.5/10)
	if got < 17.24 || got > 17.26 {
		t.Fatalf("unexpected rating: %f", got)
	}
	if got := Rating(player.Player{Points: 10}); got != 15 {
		t.Fatalf("zero price should skip value boost, got %f", got)
	}
}

func TestSuggestTopRatedWithinBudget(t *testing.T) {
	got, err := Suggest(suggestPool(500), 100*player.MoneyScale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.WithinBudget {
		t.Fatalf("expected suggestion within budget")
	}
	if got.Goalkeeper.ID != "GK-0" {
		t.Fatalf("expected top goalkeeper, got %s", got.Goalkeeper.ID)
	}
	if got.Defenders[0].ID != "DEF-0" || got.Forwards[1].ID != "FWD-1" {
		t.Fatalf("unexpected ordering: %+v", got)
	}
	if got.TotalCost != 11*500 {
		t.Fatalf("unexpected total cost: %s", got.TotalCost)
	}

	result := Validate(got.Candidate(), player.IndexByID(suggestPool(500)), Rules{Budget: 100 * player.MoneyScale})
	if !result.OK() {
		t.Fatalf("suggested squad should validate: %+v", result.Violations)
	}
}

func TestSuggestFallsBackToCheaperCombination(t *testing.T) {
	pool := suggestPool(500)
	// Make the top goalkeeper unaffordable.
	pool[0].Price = 5000

	got, err := Suggest(pool, 60*player.MoneyScale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.WithinBudget {
		t.Fatalf("expected a combination within budget")
	}
	if got.TotalCost > 60*player.MoneyScale {
		t.Fatalf("total cost over budget: %s", got.TotalCost)
	}
	if got.Goalkeeper.ID == "GK-0" {
		t.Fatalf("expected the cheaper goalkeeper to be picked")
	}
}

func TestSuggestNothingFits(t *testing.T) {
	got, err := Suggest(suggestPool(1000), 10*player.MoneyScale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.WithinBudget {
		t.Fatalf("expected suggestion flagged as over budget")
	}
	if len(got.Players()) != SquadSize {
		t.Fatalf("expected full squad, got %d players", len(got.Players()))
	}
}

func TestSuggestInsufficientPlayers(t *testing.T) {
	pool := suggestPool(500)
	var withoutForwards []player.Player
	for _, p := range pool {
		if p.Position != player.PositionForward || p.ID == "FWD-0" {
			withoutForwards = append(withoutForwards, p)
		}
	}

	_, err := Suggest(withoutForwards, 100*player.MoneyScale)
	if !errors.Is(err, ErrInsufficientPlayers) {
		t.Fatalf("expected ErrInsufficientPlayers, got %v", err)
	}
}

// scanPool has zero points everywhere so rating order falls back to id order.
// Every player costs 5.00 unless overridden.
func scanPool(overrides map[string]player.Money) []player.Player {
	var out []player.Player
	add := func(pos player.Position, n int) {
		for i := 0; i < n; i++ {
			id := fmt.Sprintf("%s-%d", pos, i)
			price := player.Money(5 * player.MoneyScale)
			if p, ok := overrides[id]; ok {
				price = p
			}
			out = append(out, player.Player{ID: id, Position: pos, Price: price})
		}
	}
	add(player.PositionGoalkeeper, 2)
	add(player.PositionDefender, 5)
	add(player.PositionMidfielder, 5)
	add(player.PositionForward, 3)
	return out
}

func TestSuggestScanOrder(t *testing.T) {
	testCases := []struct {
		name      string
		overrides map[string]player.Money
		budget    player.Money
		want      Candidate
		wantCost  player.Money
	}{
		{
			// (def 0, mid 1, fwd 0) costs 60.00 and is reached before the
			// cheaper (def 0, mid 1, fwd 1) and (def 1, mid 1, fwd 1) at 55.00.
			name:      "first fit wins over cheaper later fits",
			overrides: map[string]player.Money{"MID-0": 20 * player.MoneyScale, "FWD-0": 10 * player.MoneyScale},
			budget:    60 * player.MoneyScale,
			want: Candidate{
				"GK-0",
				"DEF-0", "DEF-1", "DEF-2", "DEF-3",
				"MID-1", "MID-2", "MID-3", "MID-4",
				"FWD-0", "FWD-1",
			},
			wantCost: 60 * player.MoneyScale,
		},
		{
			// (def 1, mid 0) also costs 65.00 but comes after (def 0, mid 1).
			name:      "midfield window advances before defender window",
			overrides: map[string]player.Money{"DEF-0": 15 * player.MoneyScale, "MID-0": 15 * player.MoneyScale},
			budget:    65 * player.MoneyScale,
			want: Candidate{
				"GK-0",
				"DEF-0", "DEF-1", "DEF-2", "DEF-3",
				"MID-1", "MID-2", "MID-3", "MID-4",
				"FWD-0", "FWD-1",
			},
			wantCost: 65 * player.MoneyScale,
		},
		{
			name:      "first fit under a later goalkeeper",
			overrides: map[string]player.Money{"GK-0": 20 * player.MoneyScale, "MID-0": 20 * player.MoneyScale, "FWD-0": 10 * player.MoneyScale},
			budget:    60 * player.MoneyScale,
			want: Candidate{
				"GK-1",
				"DEF-0", "DEF-1", "DEF-2", "DEF-3",
				"MID-1", "MID-2", "MID-3", "MID-4",
				"FWD-0", "FWD-1",
			},
			wantCost: 60 * player.MoneyScale,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Suggest(scanPool(tc.overrides), tc.budget)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.WithinBudget {
				t.Fatalf("expected a combination within budget")
			}
			if got.Candidate() != tc.want {
				t.Fatalf("unexpected squad:\n got=%v\nwant=%v", got.Candidate(), tc.want)
			}
			if got.TotalCost != tc.wantCost {
				t.Fatalf("unexpected total cost: got=%s want=%s", got.TotalCost, tc.wantCost)
			}
		})
	}
}
