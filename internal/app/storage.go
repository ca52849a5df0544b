package app

import (
	"context"
	"fmt"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/config"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/fantasy"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/match"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/scoring"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/user"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/infrastructure/repository/cache"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/infrastructure/repository/memory"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/infrastructure/repository/postgres"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/logging"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/resilience"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const dbPingTimeout = 5 * time.Second

type repositories struct {
	users   user.Repository
	players player.Repository
	matches match.Repository
	squads  fantasy.Repository
	scoring scoring.Repository
	close   func() error
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		if cfg.DBSeedCatalogue {
			inserted, err := postgres.BootstrapSeed(ctx, db)
			if err != nil {
				_ = db.Close()
				return repositories{}, fmt.Errorf("seed player catalogue: %w", err)
			}
			if inserted > 0 {
				logger.Info("player catalogue seeded", "players", inserted)
			}
		}

		repos = repositories{
			users:   postgres.NewUserRepository(db),
			players: postgres.NewPlayerRepository(db),
			matches: postgres.NewMatchRepository(db),
			squads:  postgres.NewSquadRepository(db),
			scoring: postgres.NewScoringRepository(db),
			close:   db.Close,
		}
	default:
		store := memory.NewSeededStore()
		repos = repositories{
			users:   store.Users(),
			players: store.Players(),
			matches: store.Matches(),
			squads:  store.Squads(),
			scoring: store.Scoring(),
			close:   func() error { return nil },
		}
	}

	if cfg.CacheEnabled {
		var opts []cache.PlayerOption
		if cfg.StorageDriver == config.StoragePostgres && cfg.DBBreakerEnabled {
			opts = append(opts, cache.WithBreaker(resilience.NewBreaker(resilience.BreakerConfig{
				FailureThreshold: cfg.DBBreakerThreshold,
				OpenTimeout:      cfg.DBBreakerOpenTimeout,
			})))
		}
		cachedPlayers := cache.NewPlayerRepository(repos.players, cfg.CacheTTL, opts...)
		repos.players = cachedPlayers
		repos.scoring = cache.NewScoringRepository(repos.scoring, cachedPlayers)
	}

	logger.Info("storage ready", "driver", cfg.StorageDriver, "cache_enabled", cfg.CacheEnabled)
	return repos, nil
}

// OpenDB opens a traced postgres pool and verifies it answers.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", DatabaseURL(cfg),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
