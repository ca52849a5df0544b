package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/config"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/fantasy"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/infrastructure/account/token"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/interfaces/httpapi"
	idgen "github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/id"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/logging"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/usecase"
)

// NewHTTPServer wires storage, use cases and the router. The returned close
// function releases storage resources after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	services, tokens, err := buildServices(cfg, repos, logger)
	if err != nil {
		return nil, nil, errors.Join(err, repos.close())
	}

	if _, created, err := services.Auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return nil, nil, errors.Join(fmt.Errorf("bootstrap admin user: %w", err), repos.close())
	} else if created && cfg.AdminPassword == "admin123" {
		logger.Warn("admin user created with the default password", "username", cfg.AdminUsername)
	}

	handler := httpapi.NewHandler(services, logger)
	router := httpapi.NewRouter(handler, tokens, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}

func buildServices(cfg config.Config, repos repositories, logger *logging.Logger) (httpapi.Services, *token.Service, error) {
	tokens, err := token.NewService(cfg.AuthTokenSecret, cfg.ServiceName, cfg.AuthTokenTTL)
	if err != nil {
		return httpapi.Services{}, nil, fmt.Errorf("build token service: %w", err)
	}

	ids := idgen.NewUUIDGenerator()
	rules := fantasy.Rules{Budget: cfg.SquadBudget, LockWindow: cfg.SquadLockWindow}

	ledgerSvc := usecase.NewLedgerService(repos.players, repos.squads, usecase.LedgerOptions{
		CreditNegativeDeltas: cfg.LedgerCreditNegativeDeltas,
	}, logger)
	matchSvc := usecase.NewMatchService(repos.matches, repos.players, ids, cfg.Timezone, logger)

	return httpapi.Services{
		Auth:    usecase.NewAuthService(repos.users, tokens, ids, logger),
		Players: usecase.NewPlayerService(repos.players),
		Squads:  usecase.NewSquadService(repos.players, repos.squads, rules, ids, logger),
		Matches: matchSvc,
		Scoring: usecase.NewScoringService(repos.matches, repos.players, repos.scoring, ledgerSvc, logger),
		Ledger:  ledgerSvc,
		Stats:   usecase.NewStatsService(repos.users, repos.players, repos.squads, matchSvc, logger),
	}, tokens, nil
}
