package querybuilder

import (
	"reflect"
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	testCases := []struct {
		name      string
		build     func() (string, []any, error)
		wantQuery string
		wantArgs  []any
	}{
		{
			name: "eq and order",
			build: Select("id", "name").From("players").
				Where(Eq("team", "FC Goa")).
				OrderBy("points DESC", "id").
				Limit(10).
				ToSQL,
			wantQuery: "SELECT id, name FROM players WHERE team = $1 ORDER BY points DESC, id LIMIT 10",
			wantArgs:  []any{"FC Goa"},
		},
		{
			name: "in and expr",
			build: Select("id").From("players").
				Where(In("id", []string{"a", "b"}), Expr("lower(team) = lower(?)", "fc goa")).
				ToSQL,
			wantQuery: "SELECT id FROM players WHERE id IN ($1, $2) AND lower(team) = lower($3)",
			wantArgs:  []any{"a", "b", "fc goa"},
		},
		{
			name: "empty in",
			build: Select("id").From("players").
				Where(In[string]("id", nil)).
				ToSQL,
			wantQuery: "SELECT id FROM players WHERE 1=0",
		},
		{
			name: "for update",
			build: Select("id", "locked_until").From("squads").
				Where(Eq("user_id", "u1")).
				OrderBy("created_at DESC").
				Limit(1).
				ForUpdate().
				ToSQL,
			wantQuery: "SELECT id, locked_until FROM squads WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1 FOR UPDATE",
			wantArgs:  []any{"u1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, args, err := tc.build()
			if err != nil {
				t.Fatalf("build query: %v", err)
			}
			if query != tc.wantQuery {
				t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", tc.wantQuery, query)
			}
			if len(args) != len(tc.wantArgs) || (len(args) > 0 && !reflect.DeepEqual(args, tc.wantArgs)) {
				t.Fatalf("unexpected args: %+v", args)
			}
		})
	}
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("squad_slots").
		Columns("squad_id", "slot_index").
		Values("s1", 0).
		Values("s1", 1).
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO squad_slots (squad_id, slot_index) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "s1" || args[3] != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL(); err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("users").
		SetExpr("points", "points + ?", 5).
		Set("updated_at", "now").
		Where(Eq("id", "u1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE users SET points = points + $1, updated_at = $2 WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != 5 || args[2] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertRow(t *testing.T) {
	row := struct {
		ID        string    `db:"id"`
		Points    int       `db:"points"`
		CreatedAt time.Time `db:"created_at,omitinsert"`
		internal  string
	}{ID: "u1", Points: 3, internal: "x"}

	query, args, err := InsertRow("users", row, "")
	if err != nil {
		t.Fatalf("insert row: %v", err)
	}
	if query != "INSERT INTO users (id, points) VALUES ($1, $2)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[0] != "u1" || args[1] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
	_ = row.internal

	if _, _, err := InsertRow("users", (*struct{})(nil), ""); err == nil {
		t.Fatalf("expected error for nil row")
	}
}
