package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/logging"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/usecase"
	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
)

const maxRequestBodyBytes = 1 << 20

// Services groups the use cases served over HTTP.
type Services struct {
	Auth    *usecase.AuthService
	Players *usecase.PlayerService
	Squads  *usecase.SquadService
	Matches *usecase.MatchService
	Scoring *usecase.ScoringService
	Ledger  *usecase.LedgerService
	Stats   *usecase.StatsService
}

type Handler struct {
	auth      *usecase.AuthService
	players   *usecase.PlayerService
	squads    *usecase.SquadService
	matches   *usecase.MatchService
	scoring   *usecase.ScoringService
	ledger    *usecase.LedgerService
	stats     *usecase.StatsService
	logger    *logging.Logger
	validator *validator.Validate
	now       func() time.Time
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		auth:      services.Auth,
		players:   services.Players,
		squads:    services.Squads,
		matches:   services.Matches,
		scoring:   services.Scoring,
		ledger:    services.Ledger,
		stats:     services.Stats,
		logger:    logger,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		now:       time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads a JSON body, rejecting unknown fields, then runs the
// struct validation tags.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func queryLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > 100 {
		return 0, fmt.Errorf("%w: limit must be an integer between 1 and 100", usecase.ErrInvalidInput)
	}
	return limit, nil
}

// queryBudget reads the optional budget query in currency units; zero means absent.
func queryBudget(r *http.Request) (player.Money, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("budget"))
	if raw == "" {
		return 0, nil
	}
	budget, err := player.ParseMoney(raw)
	if err != nil || budget <= 0 {
		return 0, fmt.Errorf("%w: budget must be a positive amount", usecase.ErrInvalidInput)
	}
	return budget, nil
}
