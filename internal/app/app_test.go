package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/config"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/infrastructure/repository/cache"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "isl-fantasy-api-test",
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		StorageDriver:      config.StorageMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		CORSAllowedOrigins: []string{"*"},
		SquadBudget:        10000,
		SquadLockWindow:    24 * time.Hour,
		AuthTokenSecret:    "test-secret",
		AuthTokenTTL:       time.Hour,
		AdminUsername:      "admin",
		AdminPassword:      "admin123",
		Timezone:           time.UTC,
	}
}

func TestNewHTTPServer_MemoryStorage(t *testing.T) {
	srv, closeFn, err := NewHTTPServer(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	defer func() {
		if err := closeFn(); err != nil {
			t.Fatalf("close storage: %v", err)
		}
	}()

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthz 200, got %d", rec.Code)
	}

	body := strings.NewReader(`{"username":"admin","password":"admin123"}`)
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected bootstrapped admin to log in, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestOpenRepositories_CacheToggle(t *testing.T) {
	cfg := memoryConfig()

	repos, err := openRepositories(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("open repositories: %v", err)
	}
	if _, ok := repos.players.(*cache.PlayerRepository); !ok {
		t.Fatalf("expected cached player repository, got %T", repos.players)
	}
	if _, ok := repos.scoring.(*cache.ScoringRepository); !ok {
		t.Fatalf("expected cache-invalidating scoring repository, got %T", repos.scoring)
	}

	cfg.CacheEnabled = false
	repos, err = openRepositories(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("open repositories: %v", err)
	}
	if _, ok := repos.players.(*cache.PlayerRepository); ok {
		t.Fatalf("did not expect cached player repository when cache is disabled")
	}
}
