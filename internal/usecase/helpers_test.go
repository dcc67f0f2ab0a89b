package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hirafus/matchday/internal/domain/participant"
	"github.com/hirafus/matchday/internal/infrastructure/repository/memory"
	"github.com/hirafus/matchday/internal/platform/logging"
)

// seqGenerator hands out deterministic IDs so assertions can name entities.
type seqGenerator struct {
	counts map[string]int
}

func newSeqGenerator() *seqGenerator {
	return &seqGenerator{counts: make(map[string]int)}
}

func (g *seqGenerator) NewID(prefix string) (string, error) {
	g.counts[prefix]++
	return fmt.Sprintf("%s-%d", prefix, g.counts[prefix]), nil
}

// testClock is a controllable time source for waitlist ordering.
type testClock struct {
	current time.Time
}

func newTestClock() *testClock {
	return &testClock{current: time.Date(2026, time.March, 7, 18, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	return c.current
}

func (c *testClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

// testEnv wires every service over fresh in-memory repositories.
type testEnv struct {
	players  *memory.ParticipantRepository
	guests   *memory.GuestRepository
	matches  *memory.MatchRepository
	settings *memory.SettingsRepository
	game     *memory.GamedayRepository
	clock    *testClock

	roster   *RosterService
	matchday *MatchdayService
	ledger   *LedgerService
	league   *LeagueService
	backup   *BackupService
}

func newTestEnv(t *testing.T, roster []participant.Player) *testEnv {
	t.Helper()

	env := &testEnv{
		players:  memory.NewParticipantRepository(roster),
		guests:   memory.NewGuestRepository(),
		matches:  memory.NewMatchRepository(),
		settings: memory.NewSettingsRepository(),
		game:     memory.NewGamedayRepository(),
		clock:    newTestClock(),
	}

	guard := NewGuard()
	ids := newSeqGenerator()
	logger := logging.NewNop()
	snapshots := NopSnapshotter{}

	env.roster = NewRosterService(guard, env.players, env.guests, ids, snapshots, logger)
	env.matchday = NewMatchdayService(guard, env.players, env.guests, env.matches, env.settings, env.game, ids, snapshots, logger)
	env.matchday.now = env.clock.Now
	env.ledger = NewLedgerService(guard, env.players, env.matches, env.settings, snapshots, logger)
	env.league = NewLeagueService(guard, env.players, env.settings, snapshots, logger)
	env.backup = NewBackupService(guard, env.players, env.guests, env.matches, env.settings, env.game, snapshots, logger)

	return env
}

func rosterID(n int) string {
	return fmt.Sprintf("r%d", n)
}

// rosterOf builds n undecided players r1..rN with descending points.
func rosterOf(n int) []participant.Player {
	out := make([]participant.Player, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, participant.Player{
			ID:     fmt.Sprintf("r%d", i+1),
			Name:   fmt.Sprintf("Player %d", i+1),
			Points: 100 - i,
			Status: participant.StatusUndecided,
			Form:   []participant.FormEntry{},
		})
	}
	return out
}

func mustPlayer(t *testing.T, env *testEnv, playerID string) participant.Player {
	t.Helper()
	p, found, err := env.players.GetByID(context.Background(), playerID)
	if err != nil {
		t.Fatalf("get player %s: %v", playerID, err)
	}
	if !found {
		t.Fatalf("player %s not found", playerID)
	}
	return p
}

func confirmPlayers(t *testing.T, env *testEnv, playerIDs ...string) {
	t.Helper()
	ctx := context.Background()
	for _, id := range playerIDs {
		if err := env.matchday.SetAvailability(ctx, id, participant.StatusIn); err != nil {
			t.Fatalf("confirm %s: %v", id, err)
		}
	}
}
