package postgres

import "github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"

// playerTableModel stores price in hundredths, matching player.Money.
type playerTableModel struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Team     string `db:"team"`
	Position string `db:"position"`
	Price    int64  `db:"price"`
	Points   int    `db:"points"`
}

var playerSelectColumns = []string{"id", "name", "team", "position", "price", "points"}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:       m.ID,
		Name:     m.Name,
		Team:     m.Team,
		Position: player.Position(m.Position),
		Price:    player.Money(m.Price),
		Points:   m.Points,
	}
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
