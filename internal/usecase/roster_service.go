package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/hirafus/matchday/internal/domain/participant"
	idgen "github.com/hirafus/matchday/internal/platform/id"
	"github.com/hirafus/matchday/internal/platform/logging"
)

// RosterService owns roster player CRUD. Deleting a player never touches the
// ledger: historical match entries keep their frozen snapshot of the name.
type RosterService struct {
	guard     *Guard
	players   participant.Repository
	guests    participant.GuestRegistry
	ids       idgen.Generator
	snapshots Snapshotter
	logger    *logging.Logger
}

func NewRosterService(
	guard *Guard,
	players participant.Repository,
	guests participant.GuestRegistry,
	ids idgen.Generator,
	snapshots Snapshotter,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{
		guard:     guard,
		players:   players,
		guests:    guests,
		ids:       ids,
		snapshots: snapshots,
		logger:    logger,
	}
}

// PlayerInput carries the editable fields of a roster player. Counters are
// accepted on input so an organizer can migrate an existing season in.
type PlayerInput struct {
	Name          string
	Points        int
	PhotoURL      string
	MatchesPlayed int
	Wins          int
	Draws         int
	Losses        int
	LateCount     int
	NoShowCount   int
}

func (s *RosterService) AddPlayer(ctx context.Context, input PlayerInput) (participant.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AddPlayer")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	playerID, err := s.ids.NewID("p")
	if err != nil {
		return participant.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	p := participant.Player{
		ID:            playerID,
		Name:          strings.TrimSpace(input.Name),
		Points:        input.Points,
		Status:        participant.StatusUndecided,
		MatchesPlayed: input.MatchesPlayed,
		Wins:          input.Wins,
		Draws:         input.Draws,
		Losses:        input.Losses,
		LateCount:     input.LateCount,
		NoShowCount:   input.NoShowCount,
		PhotoURL:      input.PhotoURL,
		Form:          []participant.FormEntry{},
	}
	if err := p.Validate(); err != nil {
		return participant.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.players.Upsert(ctx, p); err != nil {
		return participant.Player{}, fmt.Errorf("store player: %w", err)
	}

	s.logger.InfoContext(ctx, "player added", "player_id", p.ID, "name", p.Name)
	s.snapshots.ScheduleSave(ctx)

	return p, nil
}

func (s *RosterService) UpdatePlayer(ctx context.Context, playerID string, input PlayerInput) (participant.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.UpdatePlayer")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	current, found, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return participant.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !found {
		return participant.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	// Status, form and waitlist position are owned by the availability and
	// scoring engines, not by the edit dialog.
	current.Name = strings.TrimSpace(input.Name)
	current.Points = input.Points
	current.PhotoURL = input.PhotoURL
	current.MatchesPlayed = input.MatchesPlayed
	current.Wins = input.Wins
	current.Draws = input.Draws
	current.Losses = input.Losses
	current.LateCount = input.LateCount
	current.NoShowCount = input.NoShowCount

	if err := current.Validate(); err != nil {
		return participant.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.players.Upsert(ctx, current); err != nil {
		return participant.Player{}, fmt.Errorf("store player: %w", err)
	}

	s.logger.InfoContext(ctx, "player updated", "player_id", current.ID)
	s.snapshots.ScheduleSave(ctx)

	return current, nil
}

func (s *RosterService) DeletePlayer(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.DeletePlayer")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	deleted, err := s.players.Delete(ctx, playerID)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	// A removed player may have held an "in" slot.
	if err := promoteWaiting(ctx, s.players, s.guests); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "player removed", "player_id", playerID)
	s.snapshots.ScheduleSave(ctx)

	return nil
}

// ParticipantsView buckets the combined roster and guest pool for display.
type ParticipantsView struct {
	In      []participant.Participant
	Waiting []participant.Participant
	Others  []participant.Participant
}

// ListParticipants returns the availability buckets: confirmed participants,
// the FIFO-ordered waitlist, and the remaining roster (undecided or out).
func (s *RosterService) ListParticipants(ctx context.Context) (ParticipantsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListParticipants")
	defer span.End()

	pool, err := loadParticipants(ctx, s.players, s.guests)
	if err != nil {
		return ParticipantsView{}, err
	}

	view := ParticipantsView{
		In:      participantsIn(pool),
		Waiting: waitingQueue(pool),
	}
	for _, p := range pool {
		if p.Status() == participant.StatusUndecided || p.Status() == participant.StatusOut {
			view.Others = append(view.Others, p)
		}
	}

	return view, nil
}
