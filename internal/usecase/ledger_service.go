package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/fantasy"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/logging"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
)

// LedgerFailure is one user whose credit could not be applied.
type LedgerFailure struct {
	UserID  string
	SquadID string
	Err     error
}

// LedgerReport summarizes one scoring pass.
type LedgerReport struct {
	UsersProcessed  int
	UsersCredited   int
	PointsCredited  int
	SkippedNegative int
	Failures        []LedgerFailure
}

// Err combines every per-user failure, or returns nil.
func (r LedgerReport) Err() error {
	var combined error
	for _, f := range r.Failures {
		combined = errors.CombineErrors(combined, errors.Wrapf(f.Err, "credit user %s squad %s", f.UserID, f.SquadID))
	}
	return combined
}

type LedgerOptions struct {
	// CreditNegativeDeltas also applies point decreases to slots and totals.
	CreditNegativeDeltas bool
}

// LedgerService moves player point changes into squads and user totals.
type LedgerService struct {
	mu         sync.Mutex
	playerRepo player.Repository
	squadRepo  fantasy.Repository
	opts       LedgerOptions
	logger     *logging.Logger
}

func NewLedgerService(
	playerRepo player.Repository,
	squadRepo fantasy.Repository,
	opts LedgerOptions,
	logger *logging.Logger,
) *LedgerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LedgerService{
		playerRepo: playerRepo,
		squadRepo:  squadRepo,
		opts:       opts,
		logger:     logger,
	}
}

// ApplyScoringPass credits every user's latest squad with the difference
// between each player's lifetime points and the points already credited to
// the slot. Re-running without player changes credits nothing.
func (s *LedgerService) ApplyScoringPass(ctx context.Context) (LedgerReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.ApplyScoringPass")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	squads, err := s.squadRepo.ListLatest(ctx)
	if err != nil {
		recordSpanError(span, err)
		return LedgerReport{}, fmt.Errorf("list latest squads: %w", err)
	}
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return LedgerReport{}, fmt.Errorf("list players: %w", err)
	}
	pointsByPlayer := make(map[string]int, len(players))
	for _, p := range players {
		pointsByPlayer[p.ID] = p.Points
	}

	var report LedgerReport
	for _, squad := range squads {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.UsersProcessed++

		credit, skipped := s.buildCredit(squad, pointsByPlayer)
		report.SkippedNegative += skipped
		if len(credit.Slots) == 0 {
			continue
		}

		if err := s.squadRepo.ApplyCredit(ctx, credit); err != nil {
			report.Failures = append(report.Failures, LedgerFailure{
				UserID:  squad.UserID,
				SquadID: squad.ID,
				Err:     err,
			})
			s.logger.ErrorContext(ctx, "apply ledger credit failed",
				"user_id", squad.UserID,
				"squad_id", squad.ID,
				"error", err,
			)
			continue
		}

		report.UsersCredited++
		report.PointsCredited += credit.Delta
	}

	span.SetAttributes(
		attribute.Int("ledger.users_processed", report.UsersProcessed),
		attribute.Int("ledger.users_credited", report.UsersCredited),
		attribute.Int("ledger.failures", len(report.Failures)),
	)
	s.logger.InfoContext(ctx, "scoring pass applied",
		"users_processed", report.UsersProcessed,
		"users_credited", report.UsersCredited,
		"points_credited", report.PointsCredited,
		"skipped_negative", report.SkippedNegative,
		"failures", len(report.Failures),
	)

	return report, nil
}

func (s *LedgerService) buildCredit(squad fantasy.Squad, pointsByPlayer map[string]int) (fantasy.Credit, int) {
	credit := fantasy.Credit{SquadID: squad.ID, UserID: squad.UserID}
	skipped := 0

	for _, slot := range squad.Slots {
		points, ok := pointsByPlayer[slot.PlayerID]
		if !ok {
			continue
		}
		delta := points - slot.PointsEarned
		switch {
		case delta > 0:
		case delta < 0 && s.opts.CreditNegativeDeltas:
		case delta < 0:
			skipped++
			continue
		default:
			continue
		}

		credit.Slots = append(credit.Slots, fantasy.SlotCredit{
			PlayerID:     slot.PlayerID,
			PointsEarned: points,
		})
		credit.Delta += delta
	}

	return credit, skipped
}
