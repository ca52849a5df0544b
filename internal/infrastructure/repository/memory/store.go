package memory

import (
	"sync"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/fantasy"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/match"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/user"
)

// Store keeps every table behind one mutex so that multi-table updates
// (squad create, match result, ledger credit) are atomic.
type Store struct {
	mu sync.RWMutex

	users       map[string]user.User
	usernameIdx map[string]string
	players     map[string]player.Player
	matches     map[string]match.Match
	squads      map[string]fantasy.Squad
	userSquads  map[string][]string
}

func NewStore() *Store {
	return &Store{
		users:       make(map[string]user.User),
		usernameIdx: make(map[string]string),
		players:     make(map[string]player.Player),
		matches:     make(map[string]match.Match),
		squads:      make(map[string]fantasy.Squad),
		userSquads:  make(map[string][]string),
	}
}

// NewSeededStore returns a store holding the bundled ISL catalogue.
func NewSeededStore() *Store {
	s := NewStore()
	s.PutPlayers(SeedPlayers()...)
	return s
}

// PutPlayers inserts or replaces players.
func (s *Store) PutPlayers(players ...player.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range players {
		s.players[p.ID] = p
	}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

func (s *Store) Players() *PlayerRepository {
	return &PlayerRepository{store: s}
}

func (s *Store) Matches() *MatchRepository {
	return &MatchRepository{store: s}
}

func (s *Store) Squads() *SquadRepository {
	return &SquadRepository{store: s}
}

func (s *Store) Scoring() *ScoringRepository {
	return &ScoringRepository{store: s}
}

func cloneSquad(sq fantasy.Squad) fantasy.Squad {
	copied := sq
	copied.Slots = append([]fantasy.Slot(nil), sq.Slots...)
	return copied
}

func cloneMatch(m match.Match) match.Match {
	copied := m
	if m.HomeScore != nil {
		v := *m.HomeScore
		copied.HomeScore = &v
	}
	if m.AwayScore != nil {
		v := *m.AwayScore
		copied.AwayScore = &v
	}
	return copied
}
