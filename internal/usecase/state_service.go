package usecase

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"

	"github.com/hirafus/matchday/internal/domain/gameday"
	"github.com/hirafus/matchday/internal/domain/league"
	"github.com/hirafus/matchday/internal/domain/match"
	"github.com/hirafus/matchday/internal/domain/participant"
	"github.com/hirafus/matchday/internal/platform/logging"
)

// KVStore is the durable key-value backend state snapshots are written to.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Storage keys. Stable: renaming one orphans previously saved data.
const (
	keyPlayers      = "players"
	keyGuestPlayers = "guestPlayers"
	keyMatchHistory = "matchHistory"
	keySettings     = "settings"
	keyGameState    = "gameState"
)

// StateService persists the in-memory repositories to a KVStore and restores
// them on startup. Saves capture a consistent snapshot synchronously, then
// hand the writes to a single background worker so mutating operations never
// wait on disk.
type StateService struct {
	kv       KVStore
	players  participant.Repository
	guests   participant.GuestRegistry
	matches  match.Repository
	settings league.Repository
	game     gameday.Repository
	seed     func() []participant.Player
	pool     *ants.Pool
	logger   *logging.Logger
}

func NewStateService(
	kv KVStore,
	players participant.Repository,
	guests participant.GuestRegistry,
	matches match.Repository,
	settings league.Repository,
	game gameday.Repository,
	seed func() []participant.Player,
	logger *logging.Logger,
) (*StateService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	// One worker keeps snapshot writes ordered; newer snapshots queue
	// behind older ones instead of racing them.
	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, fmt.Errorf("create save pool: %w", err)
	}
	return &StateService{
		kv:       kv,
		players:  players,
		guests:   guests,
		matches:  matches,
		settings: settings,
		game:     game,
		seed:     seed,
		pool:     pool,
		logger:   logger,
	}, nil
}

type stateSnapshot struct {
	players  []byte
	guests   []byte
	matches  []byte
	settings []byte
	game     []byte
}

// ScheduleSave snapshots the current state and queues the write. Callers
// already hold the mutation guard, so the snapshot is consistent; a failed
// write is logged, never surfaced, because the in-memory state stays
// authoritative.
func (s *StateService) ScheduleSave(ctx context.Context) {
	snap, err := s.capture(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "state snapshot failed", "error", err)
		return
	}

	bg := context.WithoutCancel(ctx)
	if err := s.pool.Submit(func() {
		if err := s.write(bg, snap); err != nil {
			s.logger.ErrorContext(bg, "state save failed", "error", err)
		}
	}); err != nil {
		s.logger.ErrorContext(ctx, "state save not scheduled", "error", err)
	}
}

// SaveNow writes a snapshot synchronously. Used on shutdown.
func (s *StateService) SaveNow(ctx context.Context) error {
	snap, err := s.capture(ctx)
	if err != nil {
		return err
	}
	return s.write(ctx, snap)
}

// Close drains pending saves and releases the worker.
func (s *StateService) Close() {
	s.pool.Release()
}

func (s *StateService) capture(ctx context.Context) (stateSnapshot, error) {
	roster, err := s.players.List(ctx)
	if err != nil {
		return stateSnapshot{}, fmt.Errorf("list players: %w", err)
	}
	guests, err := s.guests.List(ctx)
	if err != nil {
		return stateSnapshot{}, fmt.Errorf("list guests: %w", err)
	}
	history, err := s.matches.List(ctx)
	if err != nil {
		return stateSnapshot{}, fmt.Errorf("list matches: %w", err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return stateSnapshot{}, fmt.Errorf("get settings: %w", err)
	}
	game, err := s.game.Get(ctx)
	if err != nil {
		return stateSnapshot{}, fmt.Errorf("get game state: %w", err)
	}

	wirePlayers := make([]wirePlayer, 0, len(roster))
	for _, p := range roster {
		wirePlayers = append(wirePlayers, wireFromPlayer(p))
	}
	wireGuests := make([]wireGuest, 0, len(guests))
	for _, g := range guests {
		wireGuests = append(wireGuests, wireFromGuest(g))
	}
	wireMatches := make([]wireMatch, 0, len(history))
	for _, m := range history {
		wireMatches = append(wireMatches, wireFromMatch(m))
	}

	var snap stateSnapshot
	if snap.players, err = sonic.Marshal(wirePlayers); err != nil {
		return stateSnapshot{}, fmt.Errorf("encode players: %w", err)
	}
	if snap.guests, err = sonic.Marshal(wireGuests); err != nil {
		return stateSnapshot{}, fmt.Errorf("encode guests: %w", err)
	}
	if snap.matches, err = sonic.Marshal(wireMatches); err != nil {
		return stateSnapshot{}, fmt.Errorf("encode matches: %w", err)
	}
	if snap.settings, err = sonic.Marshal(wireFromSettings(settings)); err != nil {
		return stateSnapshot{}, fmt.Errorf("encode settings: %w", err)
	}
	if snap.game, err = sonic.Marshal(wireFromGameState(game)); err != nil {
		return stateSnapshot{}, fmt.Errorf("encode game state: %w", err)
	}

	return snap, nil
}

func (s *StateService) write(ctx context.Context, snap stateSnapshot) error {
	pairs := []struct {
		key   string
		value []byte
	}{
		{keyPlayers, snap.players},
		{keyGuestPlayers, snap.guests},
		{keyMatchHistory, snap.matches},
		{keySettings, snap.settings},
		{keyGameState, snap.game},
	}
	for _, pair := range pairs {
		if err := s.kv.Set(ctx, pair.key, pair.value); err != nil {
			return fmt.Errorf("set %s: %w", pair.key, err)
		}
	}
	return nil
}

// Load restores the repositories from the KVStore. A key that is missing or
// fails to decode falls back to its initial value and is logged, so one
// corrupt record never bricks the whole league.
func (s *StateService) Load(ctx context.Context) error {
	roster := s.seed()
	if raw, ok := s.get(ctx, keyPlayers); ok {
		var wirePlayers []wirePlayer
		if err := sonic.Unmarshal(raw, &wirePlayers); err != nil {
			s.logger.ErrorContext(ctx, "stored players unreadable, seeding defaults", "error", err)
		} else {
			loaded := make([]participant.Player, 0, len(wirePlayers))
			for _, wp := range wirePlayers {
				p, err := wp.toPlayer()
				if err != nil {
					s.logger.WarnContext(ctx, "skipping stored player", "error", err)
					continue
				}
				loaded = append(loaded, p)
			}
			roster = loaded
		}
	}
	if err := s.players.Replace(ctx, roster); err != nil {
		return fmt.Errorf("replace players: %w", err)
	}

	var guests []participant.Guest
	if raw, ok := s.get(ctx, keyGuestPlayers); ok {
		var wireGuests []wireGuest
		if err := sonic.Unmarshal(raw, &wireGuests); err != nil {
			s.logger.ErrorContext(ctx, "stored guests unreadable, dropping", "error", err)
		} else {
			for _, wg := range wireGuests {
				g, err := wg.toGuest()
				if err != nil {
					s.logger.WarnContext(ctx, "skipping stored guest", "error", err)
					continue
				}
				guests = append(guests, g)
			}
		}
	}
	if err := s.guests.Replace(ctx, guests); err != nil {
		return fmt.Errorf("replace guests: %w", err)
	}

	var history []match.Match
	if raw, ok := s.get(ctx, keyMatchHistory); ok {
		var wireMatches []wireMatch
		if err := sonic.Unmarshal(raw, &wireMatches); err != nil {
			s.logger.ErrorContext(ctx, "stored match history unreadable, dropping", "error", err)
		} else {
			for _, wm := range wireMatches {
				m, err := wm.toMatch()
				if err != nil {
					s.logger.WarnContext(ctx, "skipping stored match", "error", err)
					continue
				}
				history = append(history, m)
			}
		}
	}
	if err := s.matches.Replace(ctx, history); err != nil {
		return fmt.Errorf("replace matches: %w", err)
	}

	settings := league.DefaultSettings()
	if raw, ok := s.get(ctx, keySettings); ok {
		var ws wireSettings
		if err := sonic.Unmarshal(raw, &ws); err != nil {
			s.logger.ErrorContext(ctx, "stored settings unreadable, using defaults", "error", err)
		} else if parsed, err := ws.toSettings(); err != nil {
			s.logger.ErrorContext(ctx, "stored settings invalid, using defaults", "error", err)
		} else {
			settings = parsed
		}
	}
	if err := s.settings.Set(ctx, settings); err != nil {
		return fmt.Errorf("store settings: %w", err)
	}

	game := gameday.NewState()
	if raw, ok := s.get(ctx, keyGameState); ok {
		var wg wireGameState
		if err := sonic.Unmarshal(raw, &wg); err != nil {
			s.logger.ErrorContext(ctx, "stored game state unreadable, starting fresh", "error", err)
		} else if parsed, err := wg.toGameState(); err != nil {
			s.logger.ErrorContext(ctx, "stored game state invalid, starting fresh", "error", err)
		} else {
			game = parsed
		}
	}
	if err := s.game.Set(ctx, game); err != nil {
		return fmt.Errorf("store game state: %w", err)
	}

	s.logger.InfoContext(ctx, "state loaded",
		"players", len(roster), "guests", len(guests), "matches", len(history), "phase", game.Phase,
	)

	return nil
}

func (s *StateService) get(ctx context.Context, key string) ([]byte, bool) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.ErrorContext(ctx, "state read failed", "key", key, "error", err)
		return nil, false
	}
	return raw, found
}
