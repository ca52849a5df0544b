package fantasy

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
)

// Suggestion is a squad proposed by Suggest.
type Suggestion struct {
	Goalkeeper   player.Player
	Defenders    []player.Player
	Midfielders  []player.Player
	Forwards     []player.Player
	TotalCost    player.Money
	WithinBudget bool
}

// Players lists the suggestion in slot order.
func (s Suggestion) Players() []player.Player {
	out := make([]player.Player, 0, SquadSize)
	out = append(out, s.Goalkeeper)
	out = append(out, s.Defenders...)
	out = append(out, s.Midfielders...)
	out = append(out, s.Forwards...)
	return out
}

func (s Suggestion) Candidate() Candidate {
	var c Candidate
	for idx, p := range s.Players() {
		if idx >= SquadSize {
			break
		}
		c[idx] = p.ID
	}
	return c
}

// Rating scores a player by points, boosted for value per unit of price.
func Rating(p player.Player) float64 {
	rating := float64(p.Points) * 1.5
	if price := p.Price.Units(); price > 0 {
		valueRatio := rating / price
		rating *= 1 + valueRatio/10
	}
	return rating
}

// Suggest proposes a high-rating squad within budget. It starts from the top
// rated players per position and, when that is over budget, scans goalkeepers
// then sliding windows of defenders, midfielders and forwards in rating order,
// taking the first combination that fits. If nothing fits the top rated squad
// is returned with WithinBudget=false.
func Suggest(players []player.Player, budget player.Money) (Suggestion, error) {
	byPosition := make(map[player.Position][]player.Player, len(Quota))
	for _, p := range players {
		byPosition[p.Position] = append(byPosition[p.Position], p)
	}
	for pos, need := range Quota {
		if len(byPosition[pos]) < need {
			return Suggestion{}, fmt.Errorf("%w: position=%s need=%d have=%d", ErrInsufficientPlayers, pos, need, len(byPosition[pos]))
		}
		sortByRating(byPosition[pos])
	}

	gks := byPosition[player.PositionGoalkeeper]
	defs := byPosition[player.PositionDefender]
	mids := byPosition[player.PositionMidfielder]
	fwds := byPosition[player.PositionForward]

	defQuota := Quota[player.PositionDefender]
	midQuota := Quota[player.PositionMidfielder]
	fwdQuota := Quota[player.PositionForward]

	best := newSuggestion(gks[0], defs[:defQuota], mids[:midQuota], fwds[:fwdQuota])
	if best.TotalCost <= budget {
		best.WithinBudget = true
		return best, nil
	}

	for _, gk := range gks {
		for i := 0; i+defQuota <= len(defs); i++ {
			for j := 0; j+midQuota <= len(mids); j++ {
				for k := 0; k+fwdQuota <= len(fwds); k++ {
					cost := gk.Price + sumPrice(defs[i:i+defQuota]) + sumPrice(mids[j:j+midQuota]) + sumPrice(fwds[k:k+fwdQuota])
					if cost > budget {
						continue
					}
					found := newSuggestion(gk, defs[i:i+defQuota], mids[j:j+midQuota], fwds[k:k+fwdQuota])
					found.WithinBudget = true
					return found, nil
				}
			}
		}
	}

	return best, nil
}

func newSuggestion(gk player.Player, defs, mids, fwds []player.Player) Suggestion {
	s := Suggestion{
		Goalkeeper:  gk,
		Defenders:   append([]player.Player(nil), defs...),
		Midfielders: append([]player.Player(nil), mids...),
		Forwards:    append([]player.Player(nil), fwds...),
	}
	s.TotalCost = gk.Price + sumPrice(defs) + sumPrice(mids) + sumPrice(fwds)
	return s
}

func sumPrice(players []player.Player) player.Money {
	var total player.Money
	for _, p := range players {
		total += p.Price
	}
	return total
}

// sortByRating orders by rating descending; equal ratings fall back to id.
func sortByRating(players []player.Player) {
	slices.SortStableFunc(players, func(a, b player.Player) int {
		if c := cmp.Compare(Rating(b), Rating(a)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
