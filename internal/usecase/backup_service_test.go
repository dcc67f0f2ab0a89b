package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/hirafus/matchday/internal/domain/gameday"
	"github.com/hirafus/matchday/internal/domain/league"
	"github.com/hirafus/matchday/internal/domain/match"
	"github.com/hirafus/matchday/internal/domain/participant"
)

func TestBackupRoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, rosterOf(14))

	recorded := playMatch(t, env, 3, 1, nil)
	if _, err := env.league.UpdateSettings(ctx, league.Settings{
		LeagueName:    "Thursday Night",
		Location:      "Cage 3",
		TotalMatches:  12,
		LatePenalty:   1,
		NoShowPenalty: 4,
		BonusPoint:    2,
	}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	exported, err := env.backup.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	before := make(map[string]participant.Player)
	for i := 1; i <= 14; i++ {
		before[rosterID(i)] = mustPlayer(t, env, rosterID(i))
	}

	// Wipe the season, then restore from the exported document.
	if err := env.backup.ResetSeason(ctx); err != nil {
		t.Fatalf("reset season: %v", err)
	}
	if wiped := mustPlayer(t, env, "r1"); wiped.Points != 0 || wiped.MatchesPlayed != 0 {
		t.Fatalf("season reset left stats on r1: %+v", wiped)
	}

	if err := env.backup.Import(ctx, exported); err != nil {
		t.Fatalf("import: %v", err)
	}

	for i := 1; i <= 14; i++ {
		got := mustPlayer(t, env, rosterID(i))
		want := before[rosterID(i)]
		if got.Points != want.Points || got.Wins != want.Wins || got.Losses != want.Losses ||
			got.Draws != want.Draws || got.MatchesPlayed != want.MatchesPlayed {
			t.Fatalf("r%d not restored:\n got %+v\nwant %+v", i, got, want)
		}
		// A restored roster starts on a fresh matchday.
		if got.Status != participant.StatusUndecided {
			t.Fatalf("r%d status = %s, want %s", i, got.Status, participant.StatusUndecided)
		}
		if got.WaitingTimestamp != nil {
			t.Fatalf("r%d kept a waiting timestamp across restore", i)
		}
	}

	history, err := env.matches.List(ctx)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(history) != 1 || history[0].ID != recorded.ID {
		t.Fatalf("ledger not restored: %v", history)
	}
	if history[0].Result != recorded.Result || history[0].ScoreA != recorded.ScoreA {
		t.Fatalf("restored match differs: got %+v want %+v", history[0], recorded)
	}
	if !history[0].Date.Equal(recorded.Date) {
		t.Fatalf("restored match date = %v, want %v", history[0].Date, recorded.Date)
	}

	settings, err := env.league.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings.LeagueName != "Thursday Night" || settings.NoShowPenalty != 4 {
		t.Fatalf("settings not restored: %+v", settings)
	}

	state, err := env.matchday.State(ctx)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.Phase != gameday.PhaseAvailability {
		t.Fatalf("phase = %s, want %s after restore", state.Phase, gameday.PhaseAvailability)
	}
}

func TestImport_RejectsIncompleteDocuments(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, rosterOf(3))

	cases := []struct {
		name string
		body string
	}{
		{"not json", `{"players":`},
		{"missing players", `{"matchHistory":[],"settings":{"leagueName":"x","location":"","totalMatches":10,"latePenalty":1,"noShowPenalty":2,"bonusPoint":1}}`},
		{"missing settings", `{"players":[],"matchHistory":[]}`},
		{"missing history", `{"players":[],"settings":{"leagueName":"x","location":"","totalMatches":10,"latePenalty":1,"noShowPenalty":2,"bonusPoint":1}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := env.backup.Import(ctx, []byte(tc.body))
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			// A rejected import leaves the season untouched.
			if _, found, err := env.players.GetByID(ctx, "r1"); err != nil || !found {
				t.Fatalf("roster damaged by rejected import (found=%v err=%v)", found, err)
			}
		})
	}
}

func TestResetSeason(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, rosterOf(14))

	// An organizer-added player must survive the reset like everyone else.
	added, err := env.roster.AddPlayer(ctx, PlayerInput{Name: "Late Signing", Points: 55})
	if err != nil {
		t.Fatalf("add player: %v", err)
	}
	playMatch(t, env, 2, 0, map[string]match.Penalty{"r3": match.PenaltyLate})

	if err := env.backup.ResetSeason(ctx); err != nil {
		t.Fatalf("reset season: %v", err)
	}

	roster, err := env.players.List(ctx)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(roster) != 15 {
		t.Fatalf("roster has %d players after reset, want 15", len(roster))
	}
	for _, p := range roster {
		if p.Points != 0 || p.MatchesPlayed != 0 || p.Wins != 0 || p.Draws != 0 || p.Losses != 0 {
			t.Fatalf("player %s carries stats after reset: %+v", p.ID, p)
		}
		if p.LateCount != 0 || p.NoShowCount != 0 || len(p.Form) != 0 {
			t.Fatalf("player %s carries history after reset: %+v", p.ID, p)
		}
		if p.Status != participant.StatusUndecided {
			t.Fatalf("player %s status = %s, want %s", p.ID, p.Status, participant.StatusUndecided)
		}
	}
	survivor := mustPlayer(t, env, added.ID)
	if survivor.Name != "Late Signing" {
		t.Fatalf("added player renamed by reset: %+v", survivor)
	}

	history, err := env.matches.List(ctx)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("ledger survived the season reset: %d entries", len(history))
	}

	settings, err := env.league.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings != league.DefaultSettings() {
		t.Fatalf("settings = %+v, want defaults", settings)
	}
}
