package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/scoring"
	basecache "github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/cache"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/resilience"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/usecase"
)

const playerKeyPrefix = "player:"

// PlayerRepository is a read-through cache over the player catalogue.
type PlayerRepository struct {
	next    player.Repository
	lists   *basecache.Store[[]player.Player]
	items   *basecache.Store[cachedPlayerByID]
	breaker *resilience.Breaker
}

type PlayerOption func(*PlayerRepository)

// WithBreaker fails cache misses fast while the backing store keeps failing.
func WithBreaker(b *resilience.Breaker) PlayerOption {
	return func(r *PlayerRepository) { r.breaker = b }
}

func NewPlayerRepository(next player.Repository, ttl time.Duration, opts ...PlayerOption) *PlayerRepository {
	r := &PlayerRepository{
		next:  next,
		lists: basecache.NewStore[[]player.Player](ttl),
		items: basecache.NewStore[cachedPlayerByID](ttl),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	return r.loadList(ctx, playerKeyPrefix+"list", r.next.List)
}

func (r *PlayerRepository) ListByPosition(ctx context.Context, position player.Position) ([]player.Player, error) {
	return r.loadList(ctx, playerKeyPrefix+"position:"+string(position), func(ctx context.Context) ([]player.Player, error) {
		return r.next.ListByPosition(ctx, position)
	})
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, team string) ([]player.Player, error) {
	key := playerKeyPrefix + "team:" + strings.ToLower(strings.TrimSpace(team))
	return r.loadList(ctx, key, func(ctx context.Context) ([]player.Player, error) {
		return r.next.ListByTeam(ctx, team)
	})
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	cached, err := r.items.GetOrLoad(ctx, playerKeyPrefix+"id:"+playerID, func(ctx context.Context) (cachedPlayerByID, error) {
		return guarded(r.breaker, func() (cachedPlayerByID, error) {
			item, exists, err := r.next.GetByID(ctx, playerID)
			if err != nil {
				return cachedPlayerByID{}, err
			}
			return cachedPlayerByID{value: item, exists: exists}, nil
		})
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value, cached.exists, nil
}

// GetByIDs filters the cached catalogue instead of caching every id set.
func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		wanted[id] = struct{}{}
	}
	out := make([]player.Player, 0, len(playerIDs))
	for _, p := range all {
		if _, ok := wanted[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Invalidate drops every cached catalogue entry.
func (r *PlayerRepository) Invalidate(ctx context.Context) {
	r.lists.DeletePrefix(ctx, playerKeyPrefix)
	r.items.DeletePrefix(ctx, playerKeyPrefix)
}

func (r *PlayerRepository) loadList(ctx context.Context, key string, load func(context.Context) ([]player.Player, error)) ([]player.Player, error) {
	items, err := r.lists.GetOrLoad(ctx, key, func(ctx context.Context) ([]player.Player, error) {
		items, err := guarded(r.breaker, func() ([]player.Player, error) { return load(ctx) })
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]player.Player(nil), items...), nil
}

func guarded[T any](b *resilience.Breaker, fn func() (T, error)) (T, error) {
	if b == nil {
		return fn()
	}

	var out T
	err := b.Do(func() error {
		var err error
		out, err = fn()
		return err
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return out, fmt.Errorf("%w: player catalogue: %w", usecase.ErrDependencyUnavailable, err)
	}
	return out, err
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

// ScoringRepository invalidates the player cache once a result is applied.
type ScoringRepository struct {
	next    scoring.Repository
	players *PlayerRepository
}

func NewScoringRepository(next scoring.Repository, players *PlayerRepository) *ScoringRepository {
	return &ScoringRepository{next: next, players: players}
}

func (r *ScoringRepository) ApplyResult(ctx context.Context, app scoring.Application) error {
	if err := r.next.ApplyResult(ctx, app); err != nil {
		return err
	}
	r.players.Invalidate(ctx)
	return nil
}
