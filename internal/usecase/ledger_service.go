package usecase

import (
	"context"
	"fmt"

	"github.com/hirafus/matchday/internal/domain/league"
	"github.com/hirafus/matchday/internal/domain/match"
	"github.com/hirafus/matchday/internal/domain/participant"
	"github.com/hirafus/matchday/internal/domain/scoring"
	"github.com/hirafus/matchday/internal/platform/logging"
)

// LedgerService reads and prunes the recorded match history. Deleting a
// match reverses every point and stat it contributed, as if it had never
// been played.
type LedgerService struct {
	guard     *Guard
	players   participant.Repository
	matches   match.Repository
	settings  league.Repository
	snapshots Snapshotter
	logger    *logging.Logger
}

func NewLedgerService(
	guard *Guard,
	players participant.Repository,
	matches match.Repository,
	settings league.Repository,
	snapshots Snapshotter,
	logger *logging.Logger,
) *LedgerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LedgerService{
		guard:     guard,
		players:   players,
		matches:   matches,
		settings:  settings,
		snapshots: snapshots,
		logger:    logger,
	}
}

// MatchView pairs a ledger entry with the per-participant point deltas it
// produced, for display.
type MatchView struct {
	Match  match.Match
	Deltas map[string]int
}

// ListMatches returns the ledger newest first, annotated with the points
// each roster player gained or lost in that match.
func (s *LedgerService) ListMatches(ctx context.Context) ([]MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.ListMatches")
	defer span.End()

	entries, err := s.matches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	views := make([]MatchView, 0, len(entries))
	for _, m := range entries {
		views = append(views, MatchView{Match: m, Deltas: matchDeltas(m, settings)})
	}

	return views, nil
}

func matchDeltas(m match.Match, settings league.Settings) map[string]int {
	deltas := make(map[string]int, len(m.Teams.TeamA)+len(m.Teams.TeamB))
	for _, snap := range m.Teams.TeamA {
		deltas[snap.ID] = scoring.PointDelta(snap, true, m, settings)
	}
	for _, snap := range m.Teams.TeamB {
		deltas[snap.ID] = scoring.PointDelta(snap, false, m, settings)
	}
	return deltas
}

// DeleteMatch removes one ledger entry and unwinds its accounting: result
// points and stats come back off, penalty deductions and counters revert,
// and each affected player's recent form is rebuilt from the surviving
// ledger. Stat counters clamp at zero; points reverse exactly, even into
// the negative.
func (s *LedgerService) DeleteMatch(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.DeleteMatch")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	entry, found, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("get settings: %w", err)
	}

	noShowsA, noShowsB := entry.NoShowCounts()
	bonusA, bonusB := scoring.TeamBonuses(noShowsA, noShowsB, settings.BonusPoint)

	revert := func(side []match.Snapshot, onTeamA bool, bonus int) error {
		outcome := scoring.OutcomeFor(onTeamA, entry.Result)
		for _, snap := range side {
			if snap.IsGuest {
				continue
			}
			p, found, err := s.players.GetByID(ctx, snap.ID)
			if err != nil {
				return fmt.Errorf("get player: %w", err)
			}
			if !found {
				continue
			}
			wasNoShow := entry.Penalties[snap.ID] == match.PenaltyNoShow
			p = scoring.RevertResult(p, outcome, wasNoShow, bonus)
			if penalty, ok := entry.Penalties[snap.ID]; ok {
				p = scoring.RevertPenalty(p, penalty, settings)
			}
			if err := s.players.Upsert(ctx, p); err != nil {
				return fmt.Errorf("store player: %w", err)
			}
		}
		return nil
	}
	if err := revert(entry.Teams.TeamA, true, bonusA); err != nil {
		return err
	}
	if err := revert(entry.Teams.TeamB, false, bonusB); err != nil {
		return err
	}

	deleted, err := s.matches.Delete(ctx, matchID)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	remaining, err := s.matches.List(ctx)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	for _, snap := range append(append([]match.Snapshot{}, entry.Teams.TeamA...), entry.Teams.TeamB...) {
		if snap.IsGuest {
			continue
		}
		p, found, err := s.players.GetByID(ctx, snap.ID)
		if err != nil {
			return fmt.Errorf("get player: %w", err)
		}
		if !found {
			continue
		}
		p.Form = scoring.RebuildForm(p.ID, remaining)
		if err := s.players.Upsert(ctx, p); err != nil {
			return fmt.Errorf("store player: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "match deleted", "match_id", matchID)
	s.snapshots.ScheduleSave(ctx)

	return nil
}

// SeasonProgress reports how far through the configured season the league is.
type SeasonProgress struct {
	Played int
	Total  int
}

func (s *LedgerService) Progress(ctx context.Context) (SeasonProgress, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.Progress")
	defer span.End()

	entries, err := s.matches.List(ctx)
	if err != nil {
		return SeasonProgress{}, fmt.Errorf("list matches: %w", err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return SeasonProgress{}, fmt.Errorf("get settings: %w", err)
	}

	return SeasonProgress{Played: len(entries), Total: settings.TotalMatches}, nil
}
