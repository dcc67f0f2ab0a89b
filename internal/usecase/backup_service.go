package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/valyala/bytebufferpool"

	"github.com/hirafus/matchday/internal/domain/gameday"
	"github.com/hirafus/matchday/internal/domain/league"
	"github.com/hirafus/matchday/internal/domain/match"
	"github.com/hirafus/matchday/internal/domain/participant"
	"github.com/hirafus/matchday/internal/platform/logging"
)

// backupFile is the portable season snapshot. It mirrors the stored wire
// shapes one-to-one so a backup taken on one device restores on another.
type backupFile struct {
	Players      *[]wirePlayer `json:"players" validate:"required"`
	GuestPlayers []wireGuest   `json:"guestPlayers"`
	MatchHistory *[]wireMatch  `json:"matchHistory" validate:"required"`
	Settings     *wireSettings `json:"settings" validate:"required"`
}

// BackupService exports and restores the whole season, and performs the
// destructive season reset.
type BackupService struct {
	guard     *Guard
	players   participant.Repository
	guests    participant.GuestRegistry
	matches   match.Repository
	settings  league.Repository
	game      gameday.Repository
	snapshots Snapshotter
	validate  *validator.Validate
	logger    *logging.Logger
}

func NewBackupService(
	guard *Guard,
	players participant.Repository,
	guests participant.GuestRegistry,
	matches match.Repository,
	settings league.Repository,
	game gameday.Repository,
	snapshots Snapshotter,
	logger *logging.Logger,
) *BackupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BackupService{
		guard:     guard,
		players:   players,
		guests:    guests,
		matches:   matches,
		settings:  settings,
		game:      game,
		snapshots: snapshots,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Export serializes the full season state to a single JSON document.
func (s *BackupService) Export(ctx context.Context) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackupService.Export")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	roster, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	guests, err := s.guests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	history, err := s.matches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	players := make([]wirePlayer, 0, len(roster))
	for _, p := range roster {
		players = append(players, wireFromPlayer(p))
	}
	guestPlayers := make([]wireGuest, 0, len(guests))
	for _, g := range guests {
		guestPlayers = append(guestPlayers, wireFromGuest(g))
	}
	matchHistory := make([]wireMatch, 0, len(history))
	for _, m := range history {
		matchHistory = append(matchHistory, wireFromMatch(m))
	}
	wireSet := wireFromSettings(settings)

	file := backupFile{
		Players:      &players,
		GuestPlayers: guestPlayers,
		MatchHistory: &matchHistory,
		Settings:     &wireSet,
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(file); err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	s.logger.InfoContext(ctx, "backup exported",
		"players", len(players), "guests", len(guestPlayers), "matches", len(matchHistory),
	)

	return out, nil
}

// Import replaces the entire season with the backup's contents and resets
// any matchday in progress. Nothing is touched until the whole document
// decodes and validates.
func (s *BackupService) Import(ctx context.Context, data []byte) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackupService.Import")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	var file backupFile
	if err := sonic.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("%w: decode backup: %v", ErrInvalidInput, err)
	}
	if err := s.validate.Struct(file); err != nil {
		return fmt.Errorf("%w: backup must contain players, matchHistory and settings", ErrInvalidInput)
	}

	roster := make([]participant.Player, 0, len(*file.Players))
	for _, wp := range *file.Players {
		p, err := wp.toPlayer()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		// A restored roster starts on a fresh matchday.
		p.Status = participant.StatusUndecided
		p.WaitingTimestamp = nil
		roster = append(roster, p)
	}
	guests := make([]participant.Guest, 0, len(file.GuestPlayers))
	for _, wg := range file.GuestPlayers {
		g, err := wg.toGuest()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		guests = append(guests, g)
	}
	history := make([]match.Match, 0, len(*file.MatchHistory))
	for _, wm := range *file.MatchHistory {
		m, err := wm.toMatch()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		history = append(history, m)
	}
	settings, err := file.Settings.toSettings()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.players.Replace(ctx, roster); err != nil {
		return fmt.Errorf("replace players: %w", err)
	}
	if err := s.guests.Replace(ctx, guests); err != nil {
		return fmt.Errorf("replace guests: %w", err)
	}
	if err := s.matches.Replace(ctx, history); err != nil {
		return fmt.Errorf("replace matches: %w", err)
	}
	if err := s.settings.Set(ctx, settings); err != nil {
		return fmt.Errorf("store settings: %w", err)
	}
	if err := s.game.Set(ctx, gameday.NewState()); err != nil {
		return fmt.Errorf("store game state: %w", err)
	}

	s.logger.InfoContext(ctx, "backup imported",
		"players", len(roster), "guests", len(guests), "matches", len(history),
	)
	s.snapshots.ScheduleSave(ctx)

	return nil
}

// ResetSeason wipes the season but keeps the roster: every player's points,
// stats and form are zeroed, guests and history are cleared and the default
// settings come back. Irreversible; callers are expected to export a backup
// first.
func (s *BackupService) ResetSeason(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackupService.ResetSeason")
	defer span.End()

	s.guard.Lock()
	defer s.guard.Unlock()

	roster, err := s.players.List(ctx)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	cleaned := make([]participant.Player, 0, len(roster))
	for _, p := range roster {
		cleaned = append(cleaned, participant.Player{
			ID:       p.ID,
			Name:     p.Name,
			PhotoURL: p.PhotoURL,
			Status:   participant.StatusUndecided,
		})
	}
	if err := s.players.Replace(ctx, cleaned); err != nil {
		return fmt.Errorf("replace players: %w", err)
	}
	if err := s.guests.Replace(ctx, nil); err != nil {
		return fmt.Errorf("clear guests: %w", err)
	}
	if err := s.matches.Replace(ctx, nil); err != nil {
		return fmt.Errorf("clear matches: %w", err)
	}
	if err := s.settings.Set(ctx, league.DefaultSettings()); err != nil {
		return fmt.Errorf("store settings: %w", err)
	}
	if err := s.game.Set(ctx, gameday.NewState()); err != nil {
		return fmt.Errorf("store game state: %w", err)
	}

	s.logger.WarnContext(ctx, "season reset", "at", time.Now().UTC().Format(time.RFC3339))
	s.snapshots.ScheduleSave(ctx)

	return nil
}
