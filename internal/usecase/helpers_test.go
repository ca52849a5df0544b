package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/fantasy"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/user"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/infrastructure/repository/memory"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/logging"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type sequenceIDGenerator struct {
	prefix string
	next   atomic.Int64
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("%s-%03d", g.prefix, g.next.Add(1)), nil
}

type fixedIssuer struct{}

func (fixedIssuer) Issue(p user.Principal, now time.Time) (string, time.Time, error) {
	return "token-" + p.UserID, now.Add(time.Hour), nil
}

var testLogger = logging.NewNop()

// validSeedCandidate is a 65.50 squad drawn from the bundled catalogue.
func validSeedCandidate() fantasy.Candidate {
	return fantasy.Candidate{
		"mbsg-gk-01",
		"mbsg-def-01", "bfc-def-01", "kbfc-def-01", "mcfc-def-01",
		"fcg-mid-04", "ofc-mid-04", "kbfc-mid-04", "bfc-mid-04",
		"mcfc-fwd-02", "bfc-fwd-02",
	}
}

func mustCreateUser(store *memory.Store, id string) {
	err := store.Users().Create(context.Background(), user.User{
		ID:           id,
		Username:     id,
		PasswordHash: user.HashPassword("secret"),
		CreatedAt:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		panic(err)
	}
}
