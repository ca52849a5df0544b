package httpapi

import (
	"math"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/fantasy"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/match"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/scoring"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/user"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/usecase"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=128"`
}

type squadRequest struct {
	PlayerIDs []string `json:"player_ids" validate:"required,len=11"`
}

type createMatchRequest struct {
	HomeTeam  string    `json:"home_team" validate:"required,max=100"`
	AwayTeam  string    `json:"away_team" validate:"required,max=100,nefield=HomeTeam"`
	KickoffAt time.Time `json:"kickoff_at" validate:"required"`
}

type sideEventsRequest struct {
	Scorers []string `json:"scorers" validate:"dive,required"`
	Assists []string `json:"assists" validate:"dive,required"`
	Yellows []string `json:"yellow_cards" validate:"dive,required"`
	Reds    []string `json:"red_cards" validate:"dive,required"`
}

type matchResultRequest struct {
	HomeScore *int              `json:"home_score" validate:"required,min=0"`
	AwayScore *int              `json:"away_score" validate:"required,min=0"`
	Home      sideEventsRequest `json:"home"`
	Away      sideEventsRequest `json:"away"`
}

func (r sideEventsRequest) toDomain() scoring.SideEvents {
	return scoring.SideEvents{Scorers: r.Scorers, Assists: r.Assists, Yellows: r.Yellows, Reds: r.Reds}
}

type userDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Points    int       `json:"points"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionDTO struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	User      userDTO   `json:"user"`
}

type playerDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Team     string  `json:"team"`
	Position string  `json:"position"`
	Price    float64 `json:"price"`
	Points   int     `json:"points"`
}

type slotDTO struct {
	Index        int    `json:"index"`
	Position     string `json:"position"`
	PlayerID     string `json:"player_id"`
	PointsEarned int    `json:"points_earned"`
}

type squadDTO struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	LockedUntil time.Time `json:"locked_until"`
	TotalPoints int       `json:"total_points"`
	Slots       []slotDTO `json:"slots"`
}

type lockDTO struct {
	HasSquad         bool       `json:"has_squad"`
	SquadID          string     `json:"squad_id,omitempty"`
	LockedUntil      *time.Time `json:"locked_until,omitempty"`
	Active           bool       `json:"active"`
	RemainingSeconds int64      `json:"remaining_seconds"`
}

type violationDTO struct {
	Rule     string `json:"rule"`
	Slot     *int   `json:"slot,omitempty"`
	PlayerID string `json:"player_id,omitempty"`
	Message  string `json:"message"`
}

type validationDTO struct {
	Valid      bool           `json:"valid"`
	TotalCost  float64        `json:"total_cost"`
	Budget     float64        `json:"budget"`
	Violations []violationDTO `json:"violations"`
}

type suggestionDTO struct {
	PlayerIDs    []string    `json:"player_ids"`
	Players      []playerDTO `json:"players"`
	TotalCost    float64     `json:"total_cost"`
	Budget       float64     `json:"budget"`
	WithinBudget bool        `json:"within_budget"`
}

type matchDTO struct {
	ID        string    `json:"id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	KickoffAt time.Time `json:"kickoff_at"`
	Status    string    `json:"status"`
	HomeScore *int      `json:"home_score,omitempty"`
	AwayScore *int      `json:"away_score,omitempty"`
}

type playerDeltaDTO struct {
	PlayerID string   `json:"player_id"`
	Side     string   `json:"side"`
	Delta    int      `json:"delta"`
	Events   []string `json:"events"`
}

type integrityIssueDTO struct {
	Side     string `json:"side"`
	Event    string `json:"event"`
	PlayerID string `json:"player_id"`
	Message  string `json:"message"`
}

type ledgerFailureDTO struct {
	UserID  string `json:"user_id"`
	SquadID string `json:"squad_id"`
	Error   string `json:"error"`
}

type ledgerReportDTO struct {
	UsersProcessed  int                `json:"users_processed"`
	UsersCredited   int                `json:"users_credited"`
	PointsCredited  int                `json:"points_credited"`
	SkippedNegative int                `json:"skipped_negative"`
	Failures        []ledgerFailureDTO `json:"failures"`
}

type matchResultDTO struct {
	Match  matchDTO            `json:"match"`
	Deltas []playerDeltaDTO    `json:"deltas"`
	Issues []integrityIssueDTO `json:"issues"`
	Ledger ledgerReportDTO     `json:"ledger"`
}

type leaderboardEntryDTO struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}

type popularityDTO struct {
	Player           playerDTO `json:"player"`
	SelectionCount   int       `json:"selection_count"`
	SelectionPercent float64   `json:"selection_percent"`
}

type squadPointsDTO struct {
	SquadID      string    `json:"squad_id"`
	CreatedAt    time.Time `json:"created_at"`
	TotalPoints  int       `json:"total_points"`
	EarnedPoints int       `json:"earned_points"`
}

type teamShareDTO struct {
	Team    string `json:"team"`
	Players int    `json:"players"`
}

type positionPointsDTO struct {
	Position string  `json:"position"`
	Total    int     `json:"total"`
	Average  float64 `json:"average"`
}

type analyticsDTO struct {
	PointsHistory  []squadPointsDTO    `json:"points_history"`
	Composition    []teamShareDTO      `json:"composition"`
	PositionPoints []positionPointsDTO `json:"position_points"`
}

type dashboardDTO struct {
	Leaderboard []leaderboardEntryDTO `json:"leaderboard"`
	TopScorers  []playerDTO           `json:"top_scorers"`
	Popular     []popularityDTO       `json:"popular_players"`
	Upcoming    []matchDTO            `json:"upcoming_matches"`
}

func userToDTO(u user.User) userDTO {
	return userDTO{ID: u.ID, Username: u.Username, Points: u.Points, IsAdmin: u.IsAdmin, CreatedAt: u.CreatedAt}
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:       p.ID,
		Name:     p.Name,
		Team:     p.Team,
		Position: string(p.Position),
		Price:    p.Price.Units(),
		Points:   p.Points,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	return mapSlice(items, playerToDTO)
}

func squadToDTO(s fantasy.Squad) squadDTO {
	slots := make([]slotDTO, 0, len(s.Slots))
	for _, slot := range s.Slots {
		pos, _ := fantasy.SlotPosition(slot.Index)
		slots = append(slots, slotDTO{
			Index:        slot.Index,
			Position:     string(pos),
			PlayerID:     slot.PlayerID,
			PointsEarned: slot.PointsEarned,
		})
	}

	return squadDTO{
		ID:          s.ID,
		UserID:      s.UserID,
		CreatedAt:   s.CreatedAt,
		LockedUntil: s.LockedUntil,
		TotalPoints: s.TotalPoints,
		Slots:       slots,
	}
}

func lockToDTO(lock fantasy.Lock, hasSquad bool, now time.Time) lockDTO {
	if !hasSquad {
		return lockDTO{}
	}
	lockedUntil := lock.LockedUntil
	return lockDTO{
		HasSquad:         true,
		SquadID:          lock.SquadID,
		LockedUntil:      &lockedUntil,
		Active:           lock.ActiveAt(now),
		RemainingSeconds: int64(math.Ceil(lock.RemainingAt(now).Seconds())),
	}
}

func validationToDTO(v fantasy.Validation, budget player.Money) validationDTO {
	violations := make([]violationDTO, 0, len(v.Violations))
	for _, item := range v.Violations {
		out := violationDTO{Rule: string(item.Rule), PlayerID: item.PlayerID, Message: item.Message}
		if item.Slot >= 0 {
			slot := item.Slot
			out.Slot = &slot
		}
		violations = append(violations, out)
	}

	return validationDTO{
		Valid:      v.OK(),
		TotalCost:  v.TotalCost.Units(),
		Budget:     budget.Units(),
		Violations: violations,
	}
}

func suggestionToDTO(s fantasy.Suggestion, budget player.Money) suggestionDTO {
	candidate := s.Candidate()
	return suggestionDTO{
		PlayerIDs:    candidate[:],
		Players:      playersToDTO(s.Players()),
		TotalCost:    s.TotalCost.Units(),
		Budget:       budget.Units(),
		WithinBudget: s.WithinBudget,
	}
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:        m.ID,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		KickoffAt: m.KickoffAt,
		Status:    string(m.Status),
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
	}
}

func ledgerReportToDTO(r usecase.LedgerReport) ledgerReportDTO {
	failures := make([]ledgerFailureDTO, 0, len(r.Failures))
	for _, f := range r.Failures {
		failures = append(failures, ledgerFailureDTO{UserID: f.UserID, SquadID: f.SquadID, Error: f.Err.Error()})
	}

	return ledgerReportDTO{
		UsersProcessed:  r.UsersProcessed,
		UsersCredited:   r.UsersCredited,
		PointsCredited:  r.PointsCredited,
		SkippedNegative: r.SkippedNegative,
		Failures:        failures,
	}
}

func matchResultToDTO(r usecase.MatchResultReport) matchResultDTO {
	deltas := make([]playerDeltaDTO, 0, len(r.Outcome.Deltas))
	for _, d := range r.Outcome.Deltas {
		events := make([]string, 0, len(d.Events))
		for _, e := range d.Events {
			events = append(events, string(e))
		}
		deltas = append(deltas, playerDeltaDTO{PlayerID: d.PlayerID, Side: string(d.Side), Delta: d.Delta, Events: events})
	}

	issues := make([]integrityIssueDTO, 0, len(r.Outcome.Issues))
	for _, issue := range r.Outcome.Issues {
		issues = append(issues, integrityIssueDTO{
			Side:     string(issue.Side),
			Event:    string(issue.Event),
			PlayerID: issue.PlayerID,
			Message:  issue.Error(),
		})
	}

	return matchResultDTO{
		Match:  matchToDTO(r.Match),
		Deltas: deltas,
		Issues: issues,
		Ledger: ledgerReportToDTO(r.Ledger),
	}
}

func leaderboardToDTO(entries []usecase.LeaderboardEntry) []leaderboardEntryDTO {
	return mapSlice(entries, func(e usecase.LeaderboardEntry) leaderboardEntryDTO {
		return leaderboardEntryDTO{Rank: e.Rank, UserID: e.UserID, Username: e.Username, Points: e.Points}
	})
}

func popularityToDTO(items []usecase.PlayerPopularity) []popularityDTO {
	return mapSlice(items, func(p usecase.PlayerPopularity) popularityDTO {
		return popularityDTO{
			Player:           playerToDTO(p.Player),
			SelectionCount:   p.SelectionCount,
			SelectionPercent: math.Round(p.SelectionPercent*100) / 100,
		}
	})
}

func analyticsToDTO(a usecase.UserAnalytics) analyticsDTO {
	return analyticsDTO{
		PointsHistory: mapSlice(a.PointsHistory, func(s usecase.SquadPoints) squadPointsDTO {
			return squadPointsDTO{SquadID: s.SquadID, CreatedAt: s.CreatedAt, TotalPoints: s.TotalPoints, EarnedPoints: s.EarnedPoints}
		}),
		Composition: mapSlice(a.Composition, func(t usecase.TeamShare) teamShareDTO {
			return teamShareDTO{Team: t.Team, Players: t.Players}
		}),
		PositionPoints: mapSlice(a.PositionPoints, func(p usecase.PositionPoints) positionPointsDTO {
			return positionPointsDTO{Position: string(p.Position), Total: p.Total, Average: math.Round(p.Average*100) / 100}
		}),
	}
}

func dashboardToDTO(d usecase.Dashboard) dashboardDTO {
	return dashboardDTO{
		Leaderboard: leaderboardToDTO(d.Leaderboard),
		TopScorers:  playersToDTO(d.TopScorers),
		Popular:     popularityToDTO(d.Popular),
		Upcoming:    mapSlice(d.Upcoming, matchToDTO),
	}
}

func mapSlice[T, U any](items []T, fn func(T) U) []U {
	out := make([]U, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
