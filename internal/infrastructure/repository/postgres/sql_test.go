package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/scoring"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/infrastructure/repository/memory"
	"github.com/lib/pq"
)

func TestPQErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert user: %w", &pq.Error{Code: pqUniqueViolation})
	if !isUniqueViolation(unique) {
		t.Fatalf("expected wrapped 23505 to be a unique violation")
	}
	if isForeignKeyViolation(unique) {
		t.Fatalf("unique violation must not be a foreign key violation")
	}
	if !isForeignKeyViolation(&pq.Error{Code: pqForeignKeyViolation}) {
		t.Fatalf("expected 23503 to be a foreign key violation")
	}
	if isUniqueViolation(fakeErr("pq: relation users does not exist")) {
		t.Fatalf("plain errors must not classify")
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get user: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("unexpected not found")
	}
}

func TestAssembleSquads(t *testing.T) {
	created := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	rows := []squadTableModel{
		{ID: "s2", UserID: "u2", CreatedAt: created, LockedUntil: created.Add(24 * time.Hour)},
		{ID: "s1", UserID: "u1", CreatedAt: created, LockedUntil: created.Add(24 * time.Hour), TotalPoints: 7},
	}
	slots := []squadSlotTableModel{
		{SquadID: "s1", SlotIndex: 1, PlayerID: "d1", PointsEarned: 3},
		{SquadID: "s1", SlotIndex: 0, PlayerID: "g1", PointsEarned: 4},
		{SquadID: "s2", SlotIndex: 0, PlayerID: "g2"},
	}

	got := assembleSquads(rows, slots)
	if len(got) != 2 || got[0].ID != "s2" || got[1].ID != "s1" {
		t.Fatalf("squad order must follow rows: %+v", got)
	}
	if len(got[1].Slots) != 2 || got[1].Slots[0].PlayerID != "g1" || got[1].Slots[1].PointsEarned != 3 {
		t.Fatalf("slots must be attached in index order: %+v", got[1].Slots)
	}
	if got[1].TotalPoints != 7 {
		t.Fatalf("unexpected total: %d", got[1].TotalPoints)
	}
}

func TestLatestSquadsQuery(t *testing.T) {
	query, args, err := latestSquadsQuery().ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	want := "SELECT DISTINCT ON (user_id) id, user_id, created_at, locked_until, total_points FROM squads ORDER BY user_id, created_at DESC, id DESC"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSplitDeltas(t *testing.T) {
	ids, sums := splitDeltas([]scoring.PlayerDelta{
		{PlayerID: "a", Delta: 5},
		{PlayerID: "b", Delta: -3},
		{PlayerID: "a", Delta: 2},
	})
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("unexpected ids: %+v", ids)
	}
	if sums[0] != 7 || sums[1] != -3 {
		t.Fatalf("unexpected sums: %+v", sums)
	}
}

func TestSeedPlayersQuery(t *testing.T) {
	players := memory.SeedPlayers()
	query, args, err := seedPlayersQuery(players)
	if err != nil {
		t.Fatalf("build seed query: %v", err)
	}
	if !strings.HasSuffix(query, "ON CONFLICT (id) DO NOTHING") {
		t.Fatalf("seed must be idempotent: %s", query)
	}
	if len(args) != len(players)*len(playerSelectColumns) {
		t.Fatalf("unexpected arg count: %d", len(args))
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
