package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
)

// PlayerFilter narrows the catalogue; zero values match everything.
type PlayerFilter struct {
	Position player.Position
	Team     string
}

type PlayerService struct {
	playerRepo player.Repository
}

func NewPlayerService(playerRepo player.Repository) *PlayerService {
	return &PlayerService{playerRepo: playerRepo}
}

// ListPlayers returns the catalogue ordered by points, highest first.
func (s *PlayerService) ListPlayers(ctx context.Context, filter PlayerFilter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	var (
		players []player.Player
		err     error
	)
	switch {
	case filter.Position != "":
		if _, ok := player.AllPositions[filter.Position]; !ok {
			return nil, fmt.Errorf("%w: invalid position %q", ErrInvalidInput, filter.Position)
		}
		players, err = s.playerRepo.ListByPosition(ctx, filter.Position)
	case strings.TrimSpace(filter.Team) != "":
		players, err = s.playerRepo.ListByTeam(ctx, strings.TrimSpace(filter.Team))
	default:
		players, err = s.playerRepo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	if filter.Position != "" && strings.TrimSpace(filter.Team) != "" {
		kept := make([]player.Player, 0, len(players))
		for _, p := range players {
			if strings.EqualFold(p.Team, strings.TrimSpace(filter.Team)) {
				kept = append(kept, p)
			}
		}
		players = kept
	}

	out := append([]player.Player(nil), players...)
	SortPlayersByPoints(out)
	return out, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return p, nil
}
