package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/hirafus/matchday/internal/domain/league"
	"github.com/hirafus/matchday/internal/domain/participant"
	"github.com/hirafus/matchday/internal/platform/logging"
)

// LeagueService exposes the season standings and the league configuration.
type LeagueService struct {
	guard     *Guard
	players   participant.Repository
	settings  league.Repository
	snapshots Snapshotter
	logger    *logging.Logger
}

func NewLeagueService(
	guard *Guard,
	players participant.Repository,
	settings league.Repository,
	snapshots Snapshotter,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueService{
		guard:     guard,
		players:   players,
		settings:  settings,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Standings returns the roster ordered by points, highest first. Ties keep
// roster order; guests never appear.
func (s *LeagueService) Standings(ctx context.Context) ([]participant.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Standings")
	defer span.End()

	roster, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	sort.SliceStable(roster, func(i, j int) bool {
		return roster[i].Points > roster[j].Points
	})

	return roster, nil
}

func (s *LeagueService) GetSettings(ctx context.Context) (league.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetSettings")
	defer span.End()

	return s.settings.Get(ctx)
}

// UpdateSettings replaces the league configuration. New values only affect
// matches recorded after the change; the ledger is never retroactively
// repriced.
func (s *LeagueService) UpdateSettings(ctx context.Context, updated league.Settings) (league.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.UpdateSettings")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	if err := updated.Validate(); err != nil {
		return league.Settings{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.settings.Set(ctx, updated); err != nil {
		return league.Settings{}, fmt.Errorf("store settings: %w", err)
	}

	s.logger.InfoContext(ctx, "settings updated", "league", updated.LeagueName)
	s.snapshots.ScheduleSave(ctx)

	return updated, nil
}
