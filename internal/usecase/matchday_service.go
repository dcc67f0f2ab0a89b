package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hirafus/matchday/internal/domain/draft"
	"github.com/hirafus/matchday/internal/domain/gameday"
	"github.com/hirafus/matchday/internal/domain/league"
	"github.com/hirafus/matchday/internal/domain/match"
	"github.com/hirafus/matchday/internal/domain/participant"
	"github.com/hirafus/matchday/internal/domain/scoring"
	idgen "github.com/hirafus/matchday/internal/platform/id"
	"github.com/hirafus/matchday/internal/platform/logging"
)

// MatchdayService drives one matchday through its phases: availability and
// waitlist, team draft, penalty toggles, result recording, and reset.
type MatchdayService struct {
	guard     *Guard
	players   participant.Repository
	guests    participant.GuestRegistry
	matches   match.Repository
	settings  league.Repository
	game      gameday.Repository
	ids       idgen.Generator
	snapshots Snapshotter
	logger    *logging.Logger
	now       func() time.Time
}

func NewMatchdayService(
	guard *Guard,
	players participant.Repository,
	guests participant.GuestRegistry,
	matches match.Repository,
	settings league.Repository,
	game gameday.Repository,
	ids idgen.Generator,
	snapshots Snapshotter,
	logger *logging.Logger,
) *MatchdayService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchdayService{
		guard:     guard,
		players:   players,
		guests:    guests,
		matches:   matches,
		settings:  settings,
		game:      game,
		ids:       ids,
		snapshots: snapshots,
		logger:    logger,
		now:       time.Now,
	}
}

// State returns the current in-progress matchday.
func (s *MatchdayService) State(ctx context.Context) (gameday.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.State")
	defer span.End()

	return s.game.Get(ctx)
}

// SetAvailability moves one participant between availability buckets. Only
// legal during the availability phase; a full "in" bucket diverts the request
// to the waitlist, and any freed slot is refilled from the waitlist in FIFO
// order.
func (s *MatchdayService) SetAvailability(ctx context.Context, participantID string, desired participant.Status) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.SetAvailability")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	state, err := s.game.Get(ctx)
	if err != nil {
		return fmt.Errorf("get game state: %w", err)
	}
	if state.Phase != gameday.PhaseAvailability {
		return fmt.Errorf("%w: availability is locked during %s", ErrPhaseLocked, state.Phase)
	}

	pool, err := loadParticipants(ctx, s.players, s.guests)
	if err != nil {
		return err
	}

	var target *participant.Participant
	for i := range pool {
		if pool[i].ID() == participantID {
			target = &pool[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w: participant %s", ErrNotFound, participantID)
	}

	// Guests do not persist as "out": leaving removes them entirely.
	if target.Guest != nil && desired == participant.StatusOut {
		if _, err := s.guests.Delete(ctx, participantID); err != nil {
			return fmt.Errorf("remove guest: %w", err)
		}
		if err := promoteWaiting(ctx, s.players, s.guests); err != nil {
			return err
		}
		s.snapshots.ScheduleSave(ctx)
		return nil
	}

	status := desired
	var waitingTS *time.Time
	switch desired {
	case participant.StatusIn:
		if countIn(pool) < MaxPlayersIn {
			status = participant.StatusIn
		} else {
			status = participant.StatusWaiting
			if target.Status() == participant.StatusWaiting {
				waitingTS = target.WaitingTimestamp()
			} else {
				now := s.now().UTC()
				waitingTS = &now
			}
		}
	case participant.StatusOut, participant.StatusUndecided:
		// waitingTS stays nil.
	default:
		return fmt.Errorf("%w: cannot request status %q", ErrInvalidInput, desired)
	}

	if target.Guest != nil {
		g := *target.Guest
		g.Status = status
		g.WaitingTimestamp = waitingTS
		if err := s.guests.Upsert(ctx, g); err != nil {
			return fmt.Errorf("store guest: %w", err)
		}
	} else {
		p := *target.Player
		p.Status = status
		p.WaitingTimestamp = waitingTS
		if err := s.players.Upsert(ctx, p); err != nil {
			return fmt.Errorf("store player: %w", err)
		}
	}

	if err := promoteWaiting(ctx, s.players, s.guests); err != nil {
		return err
	}

	s.snapshots.ScheduleSave(ctx)
	return nil
}

// AddGuest registers an ephemeral matchday guest, seeded at the roster's
// median points so the draft places them fairly. Guests are admitted through
// the same capacity gate as everyone else.
func (s *MatchdayService) AddGuest(ctx context.Context, name string) (participant.Guest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.AddGuest")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	state, err := s.game.Get(ctx)
	if err != nil {
		return participant.Guest{}, fmt.Errorf("get game state: %w", err)
	}
	if state.Phase != gameday.PhaseAvailability {
		return participant.Guest{}, fmt.Errorf("%w: guests can only join during %s", ErrPhaseLocked, gameday.PhaseAvailability)
	}

	existing, err := s.guests.List(ctx)
	if err != nil {
		return participant.Guest{}, fmt.Errorf("list guests: %w", err)
	}
	if len(existing) >= MaxGuests {
		return participant.Guest{}, fmt.Errorf("%w: guest limit of %d reached", ErrInvalidInput, MaxGuests)
	}

	roster, err := s.players.List(ctx)
	if err != nil {
		return participant.Guest{}, fmt.Errorf("list players: %w", err)
	}

	guestID, err := s.ids.NewID("g")
	if err != nil {
		return participant.Guest{}, fmt.Errorf("generate guest id: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Guest %d", len(existing)+1)
	}

	g := participant.Guest{
		ID:     guestID,
		Name:   name,
		Points: medianRosterPoints(roster),
		Status: participant.StatusIn,
	}

	pool, err := loadParticipants(ctx, s.players, s.guests)
	if err != nil {
		return participant.Guest{}, err
	}
	if countIn(pool) >= MaxPlayersIn {
		now := s.now().UTC()
		g.Status = participant.StatusWaiting
		g.WaitingTimestamp = &now
	}

	if err := s.guests.Upsert(ctx, g); err != nil {
		return participant.Guest{}, fmt.Errorf("store guest: %w", err)
	}

	s.logger.InfoContext(ctx, "guest added", "guest_id", g.ID, "status", g.Status, "points", g.Points)
	s.snapshots.ScheduleSave(ctx)

	return g, nil
}

func (s *MatchdayService) RemoveGuest(ctx context.Context, guestID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.RemoveGuest")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	deleted, err := s.guests.Delete(ctx, guestID)
	if err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: guest %s", ErrNotFound, guestID)
	}

	if err := promoteWaiting(ctx, s.players, s.guests); err != nil {
		return err
	}

	s.snapshots.ScheduleSave(ctx)
	return nil
}

// DraftMethod selects how teams are formed.
type DraftMethod string

const (
	DraftByPoints DraftMethod = "points"
	DraftManual   DraftMethod = "manual"
)

// Draft forms the two teams from the confirmed pool. Requires exactly the
// full capacity of confirmed participants for a 7-vs-7 split.
func (s *MatchdayService) Draft(ctx context.Context, method DraftMethod) (gameday.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.Draft")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	state, err := s.game.Get(ctx)
	if err != nil {
		return gameday.State{}, fmt.Errorf("get game state: %w", err)
	}
	if state.Phase != gameday.PhaseAvailability {
		return gameday.State{}, fmt.Errorf("%w: draft is only available during %s", ErrPhaseLocked, gameday.PhaseAvailability)
	}

	pool, err := loadParticipants(ctx, s.players, s.guests)
	if err != nil {
		return gameday.State{}, err
	}
	confirmed := participantsIn(pool)
	if len(confirmed) != draft.Capacity {
		return gameday.State{}, fmt.Errorf("%w: drafting requires exactly %d confirmed participants for 7 vs 7, have %d",
			ErrInvalidInput, draft.Capacity, len(confirmed))
	}

	switch method {
	case DraftManual:
		state.Phase = gameday.PhaseManualDraft
		state.ManualTeams = match.Teams{}
	case DraftByPoints:
		teamA, teamB := draft.Snake(draft.Rank(confirmed))
		state.Teams = &match.Teams{
			TeamA: snapshotTeam(teamA),
			TeamB: snapshotTeam(teamB),
		}
		state.Phase = gameday.PhaseTeams
	default:
		return gameday.State{}, fmt.Errorf("%w: unknown draft method %q", ErrInvalidInput, method)
	}

	if err := s.game.Set(ctx, state); err != nil {
		return gameday.State{}, fmt.Errorf("store game state: %w", err)
	}

	s.logger.InfoContext(ctx, "teams drafted", "method", method)
	s.snapshots.ScheduleSave(ctx)

	return state, nil
}

// AssignPlayer moves one confirmed participant onto a manual-draft side, off
// both sides, or between sides. Idempotent: a participant can never appear
// twice.
func (s *MatchdayService) AssignPlayer(ctx context.Context, participantID string, side gameday.TeamAssignment) (gameday.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.AssignPlayer")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	state, err := s.game.Get(ctx)
	if err != nil {
		return gameday.State{}, fmt.Errorf("get game state: %w", err)
	}
	if state.Phase != gameday.PhaseManualDraft {
		return gameday.State{}, fmt.Errorf("%w: assignments require the manual draft phase", ErrPhaseLocked)
	}

	pool, err := loadParticipants(ctx, s.players, s.guests)
	if err != nil {
		return gameday.State{}, err
	}

	var target *participant.Participant
	for i := range pool {
		if pool[i].ID() == participantID && pool[i].Status() == participant.StatusIn {
			target = &pool[i]
			break
		}
	}
	if target == nil {
		return gameday.State{}, fmt.Errorf("%w: confirmed participant %s", ErrNotFound, participantID)
	}

	snap := match.Snapshot{
		ID:       target.ID(),
		Name:     target.Name(),
		PhotoURL: target.PhotoURL(),
		IsGuest:  target.IsGuest(),
	}

	teams := state.ManualTeams.Remove(participantID)
	switch side {
	case gameday.AssignTeamA:
		teams.TeamA = append(teams.TeamA, snap)
	case gameday.AssignTeamB:
		teams.TeamB = append(teams.TeamB, snap)
	case gameday.AssignUnassigned:
		// Removed from both sides already.
	}
	state.ManualTeams = teams

	if err := s.game.Set(ctx, state); err != nil {
		return gameday.State{}, fmt.Errorf("store game state: %w", err)
	}

	s.snapshots.ScheduleSave(ctx)
	return state, nil
}

// ConfirmManualDraft locks the manual assignments in. Every confirmed
// participant must be placed and both sides must hold exactly seven.
func (s *MatchdayService) ConfirmManualDraft(ctx context.Context) (gameday.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.ConfirmManualDraft")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	state, err := s.game.Get(ctx)
	if err != nil {
		return gameday.State{}, fmt.Errorf("get game state: %w", err)
	}
	if state.Phase != gameday.PhaseManualDraft {
		return gameday.State{}, fmt.Errorf("%w: no manual draft in progress", ErrPhaseLocked)
	}

	if len(state.ManualTeams.TeamA) != draft.TeamSize || len(state.ManualTeams.TeamB) != draft.TeamSize {
		return gameday.State{}, fmt.Errorf("%w: both teams need exactly %d players, have %d vs %d",
			ErrInvalidInput, draft.TeamSize, len(state.ManualTeams.TeamA), len(state.ManualTeams.TeamB))
	}

	pool, err := loadParticipants(ctx, s.players, s.guests)
	if err != nil {
		return gameday.State{}, err
	}
	unassigned := 0
	for _, p := range participantsIn(pool) {
		if !state.ManualTeams.Contains(p.ID()) {
			unassigned++
		}
	}
	if unassigned > 0 {
		return gameday.State{}, fmt.Errorf("%w: %d confirmed participants are still unassigned", ErrInvalidInput, unassigned)
	}

	teams := state.ManualTeams
	state.Teams = &teams
	state.ManualTeams = match.Teams{}
	state.Phase = gameday.PhaseTeams

	if err := s.game.Set(ctx, state); err != nil {
		return gameday.State{}, fmt.Errorf("store game state: %w", err)
	}

	s.logger.InfoContext(ctx, "manual draft confirmed")
	s.snapshots.ScheduleSave(ctx)

	return state, nil
}

// TogglePenalty flags or unflags one non-guest player of the drafted teams.
// Toggling the same penalty twice clears it; a different penalty replaces it.
func (s *MatchdayService) TogglePenalty(ctx context.Context, playerID string, penalty match.Penalty) (gameday.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.TogglePenalty")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	state, err := s.game.Get(ctx)
	if err != nil {
		return gameday.State{}, fmt.Errorf("get game state: %w", err)
	}
	if state.Phase != gameday.PhaseTeams || state.Teams == nil {
		return gameday.State{}, fmt.Errorf("%w: penalties require drafted teams", ErrPhaseLocked)
	}
	if !state.Teams.Contains(playerID) {
		return gameday.State{}, fmt.Errorf("%w: player %s is not in this match", ErrNotFound, playerID)
	}
	for _, snap := range append(append([]match.Snapshot{}, state.Teams.TeamA...), state.Teams.TeamB...) {
		if snap.ID == playerID && snap.IsGuest {
			return gameday.State{}, fmt.Errorf("%w: guests are exempt from penalties", ErrInvalidInput)
		}
	}

	if state.Penalties == nil {
		state.Penalties = make(map[string]match.Penalty)
	}
	if state.Penalties[playerID] == penalty {
		delete(state.Penalties, playerID)
	} else {
		state.Penalties[playerID] = penalty
	}

	if err := s.game.Set(ctx, state); err != nil {
		return gameday.State{}, fmt.Errorf("store game state: %w", err)
	}

	s.snapshots.ScheduleSave(ctx)
	return state, nil
}

// RecordResult turns the entered score line into point deltas and stat
// increments, appends the frozen match to the ledger and moves the matchday
// to the results phase. Guests take part in the match but never in the
// accounting.
func (s *MatchdayService) RecordResult(ctx context.Context, scoreA, scoreB int) (MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.RecordResult")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	if scoreA < 0 || scoreB < 0 {
		return MatchView{}, fmt.Errorf("%w: scores cannot be negative", ErrInvalidInput)
	}

	state, err := s.game.Get(ctx)
	if err != nil {
		return MatchView{}, fmt.Errorf("get game state: %w", err)
	}
	if state.Phase != gameday.PhaseTeams || state.Teams == nil {
		return MatchView{}, fmt.Errorf("%w: no drafted teams to record a result for", ErrPhaseLocked)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return MatchView{}, fmt.Errorf("get settings: %w", err)
	}

	result := match.ResultFromScores(scoreA, scoreB)

	matchID, err := s.ids.NewID("m")
	if err != nil {
		return MatchView{}, fmt.Errorf("generate match id: %w", err)
	}
	entry := match.Match{
		ID:        matchID,
		Date:      s.now().UTC(),
		Teams:     *state.Teams,
		Result:    result,
		ScoreA:    scoreA,
		ScoreB:    scoreB,
		Penalties: clonePenalties(state.Penalties),
	}
	// The full entry has to be valid before any player is touched: a stray
	// penalty in a restored game state must not leave half-applied points
	// behind on rejection.
	if err := entry.Validate(); err != nil {
		return MatchView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Penalty deductions first, then result points.
	for playerID, penalty := range entry.Penalties {
		p, found, err := s.players.GetByID(ctx, playerID)
		if err != nil {
			return MatchView{}, fmt.Errorf("get player: %w", err)
		}
		if !found {
			continue
		}
		if err := s.players.Upsert(ctx, scoring.ApplyPenalty(p, penalty, settings)); err != nil {
			return MatchView{}, fmt.Errorf("store player: %w", err)
		}
	}

	noShowsA, noShowsB := entry.NoShowCounts()
	bonusA, bonusB := scoring.TeamBonuses(noShowsA, noShowsB, settings.BonusPoint)

	apply := func(side []match.Snapshot, onTeamA bool, bonus int) error {
		outcome := scoring.OutcomeFor(onTeamA, result)
		for _, snap := range side {
			if snap.IsGuest {
				continue
			}
			p, found, err := s.players.GetByID(ctx, snap.ID)
			if err != nil {
				return fmt.Errorf("get player: %w", err)
			}
			if !found {
				// Deleted from the roster mid-match; the snapshot still
				// records their participation.
				continue
			}
			wasNoShow := entry.Penalties[snap.ID] == match.PenaltyNoShow
			if err := s.players.Upsert(ctx, scoring.ApplyResult(p, outcome, wasNoShow, bonus)); err != nil {
				return fmt.Errorf("store player: %w", err)
			}
		}
		return nil
	}
	if err := apply(entry.Teams.TeamA, true, bonusA); err != nil {
		return MatchView{}, err
	}
	if err := apply(entry.Teams.TeamB, false, bonusB); err != nil {
		return MatchView{}, err
	}

	if err := s.matches.Prepend(ctx, entry); err != nil {
		return MatchView{}, fmt.Errorf("store match: %w", err)
	}

	state.Phase = gameday.PhaseResults
	state.ScoreA = scoreA
	state.ScoreB = scoreB
	state.Winner = &result
	if err := s.game.Set(ctx, state); err != nil {
		return MatchView{}, fmt.Errorf("store game state: %w", err)
	}

	s.logger.InfoContext(ctx, "result recorded",
		"match_id", entry.ID, "result", result, "score_a", scoreA, "score_b", scoreB,
		"bonus_a", bonusA, "bonus_b", bonusB,
	)
	s.snapshots.ScheduleSave(ctx)

	return MatchView{Match: entry, Deltas: matchDeltas(entry, settings)}, nil
}

// ResetGame starts the next matchday: back to availability, guests dropped,
// every roster player undecided again.
func (s *MatchdayService) ResetGame(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.ResetGame")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	return s.resetGameLocked(ctx)
}

func (s *MatchdayService) resetGameLocked(ctx context.Context) error {
	if err := s.guests.Replace(ctx, nil); err != nil {
		return fmt.Errorf("clear guests: %w", err)
	}

	roster, err := s.players.List(ctx)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	for _, p := range roster {
		p.Status = participant.StatusUndecided
		p.WaitingTimestamp = nil
		if err := s.players.Upsert(ctx, p); err != nil {
			return fmt.Errorf("store player: %w", err)
		}
	}

	if err := s.game.Set(ctx, gameday.NewState()); err != nil {
		return fmt.Errorf("store game state: %w", err)
	}

	s.logger.InfoContext(ctx, "game reset")
	s.snapshots.ScheduleSave(ctx)

	return nil
}

// CancelDraft abandons a draft in progress and returns to availability
// without touching statuses or guests.
func (s *MatchdayService) CancelDraft(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.CancelDraft")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	state, err := s.game.Get(ctx)
	if err != nil {
		return fmt.Errorf("get game state: %w", err)
	}
	if state.Phase == gameday.PhaseAvailability {
		return nil
	}

	if err := s.game.Set(ctx, gameday.NewState()); err != nil {
		return fmt.Errorf("store game state: %w", err)
	}

	s.logger.InfoContext(ctx, "draft cancelled")
	s.snapshots.ScheduleSave(ctx)

	return nil
}

func snapshotTeam(team []participant.Participant) []match.Snapshot {
	out := make([]match.Snapshot, 0, len(team))
	for _, p := range team {
		out = append(out, match.Snapshot{
			ID:       p.ID(),
			Name:     p.Name(),
			PhotoURL: p.PhotoURL(),
			IsGuest:  p.IsGuest(),
		})
	}
	return out
}

func clonePenalties(penalties map[string]match.Penalty) map[string]match.Penalty {
	out := make(map[string]match.Penalty, len(penalties))
	for playerID, penalty := range penalties {
		out[playerID] = penalty
	}
	return out
}
