package postgres

import (
	"database/sql"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/match"
)

type matchTableModel struct {
	ID        string        `db:"id"`
	HomeTeam  string        `db:"home_team"`
	AwayTeam  string        `db:"away_team"`
	KickoffAt time.Time     `db:"kickoff_at"`
	Status    string        `db:"status"`
	HomeScore sql.NullInt64 `db:"home_score"`
	AwayScore sql.NullInt64 `db:"away_score"`
}

var matchSelectColumns = []string{"id", "home_team", "away_team", "kickoff_at", "status", "home_score", "away_score"}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:        m.ID,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		KickoffAt: m.KickoffAt.UTC(),
		Status:    match.Status(m.Status),
		HomeScore: nullIntPtr(m.HomeScore),
		AwayScore: nullIntPtr(m.AwayScore),
	}
}

func matchRowFromDomain(m match.Match) matchTableModel {
	return matchTableModel{
		ID:        m.ID,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		KickoffAt: m.KickoffAt.UTC(),
		Status:    string(m.Status),
		HomeScore: intPtrToNull(m.HomeScore),
		AwayScore: intPtrToNull(m.AwayScore),
	}
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func intPtrToNull(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
