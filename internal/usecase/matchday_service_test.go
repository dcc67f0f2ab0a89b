package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hirafus/matchday/internal/domain/gameday"
	"github.com/hirafus/matchday/internal/domain/match"
	"github.com/hirafus/matchday/internal/domain/participant"
)

func TestSetAvailability_CapacityAndWaitlist(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, rosterOf(16))

	for i := 1; i <= 14; i++ {
		if err := env.matchday.SetAvailability(ctx, rosterID(i), participant.StatusIn); err != nil {
			t.Fatalf("confirm r%d: %v", i, err)
		}
	}

	t.Run("fifteenth confirmation lands on the waitlist", func(t *testing.T) {
		if err := env.matchday.SetAvailability(ctx, "r15", participant.StatusIn); err != nil {
			t.Fatalf("confirm r15: %v", err)
		}

		p := mustPlayer(t, env, "r15")
		if p.Status != participant.StatusWaiting {
			t.Fatalf("r15 status = %s, want %s", p.Status, participant.StatusWaiting)
		}
		if p.WaitingTimestamp == nil {
			t.Fatal("r15 has no waiting timestamp")
		}
	})

	t.Run("repeat request keeps the original waitlist position", func(t *testing.T) {
		first := *mustPlayer(t, env, "r15").WaitingTimestamp

		env.clock.Advance(5 * time.Minute)
		if err := env.matchday.SetAvailability(ctx, "r15", participant.StatusIn); err != nil {
			t.Fatalf("repeat confirm r15: %v", err)
		}

		got := mustPlayer(t, env, "r15").WaitingTimestamp
		if got == nil || !got.Equal(first) {
			t.Fatalf("waiting timestamp changed: got=%v want=%v", got, first)
		}
	})

	t.Run("freed slot promotes the earliest waiter", func(t *testing.T) {
		env.clock.Advance(time.Minute)
		if err := env.matchday.SetAvailability(ctx, "r16", participant.StatusIn); err != nil {
			t.Fatalf("confirm r16: %v", err)
		}
		if got := mustPlayer(t, env, "r16").Status; got != participant.StatusWaiting {
			t.Fatalf("r16 status = %s, want %s", got, participant.StatusWaiting)
		}

		// r15 joined the waitlist before r16, so only r15 moves up.
		if err := env.matchday.SetAvailability(ctx, "r1", participant.StatusOut); err != nil {
			t.Fatalf("withdraw r1: %v", err)
		}

		promoted := mustPlayer(t, env, "r15")
		if promoted.Status != participant.StatusIn {
			t.Fatalf("r15 status = %s, want %s", promoted.Status, participant.StatusIn)
		}
		if promoted.WaitingTimestamp != nil {
			t.Fatal("promoted player kept a waiting timestamp")
		}
		if got := mustPlayer(t, env, "r16").Status; got != participant.StatusWaiting {
			t.Fatalf("r16 status = %s, want %s", got, participant.StatusWaiting)
		}
	})

	t.Run("locked once teams are drafted", func(t *testing.T) {
		state := gameday.NewState()
		state.Phase = gameday.PhaseTeams
		state.Teams = &match.Teams{}
		if err := env.game.Set(ctx, state); err != nil {
			t.Fatalf("set game state: %v", err)
		}
		t.Cleanup(func() {
			if err := env.game.Set(ctx, gameday.NewState()); err != nil {
				t.Fatalf("restore game state: %v", err)
			}
		})

		err := env.matchday.SetAvailability(ctx, "r2", participant.StatusOut)
		if !errors.Is(err, ErrPhaseLocked) {
			t.Fatalf("expected ErrPhaseLocked, got %v", err)
		}
	})

	t.Run("unknown participant", func(t *testing.T) {
		err := env.matchday.SetAvailability(ctx, "nobody", participant.StatusIn)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestAddGuest(t *testing.T) {
	ctx := context.Background()

	t.Run("seeded at the roster median and confirmed when space exists", func(t *testing.T) {
		env := newTestEnv(t, rosterOf(5)) // points 100..96, median 98

		g, err := env.matchday.AddGuest(ctx, "  Ringer  ")
		if err != nil {
			t.Fatalf("add guest: %v", err)
		}
		if g.Name != "Ringer" {
			t.Fatalf("guest name = %q, want %q", g.Name, "Ringer")
		}
		if g.Points != 98 {
			t.Fatalf("guest points = %d, want 98", g.Points)
		}
		if g.Status != participant.StatusIn {
			t.Fatalf("guest status = %s, want %s", g.Status, participant.StatusIn)
		}
	})

	t.Run("blank name gets a numbered default", func(t *testing.T) {
		env := newTestEnv(t, rosterOf(5))

		if _, err := env.matchday.AddGuest(ctx, "First"); err != nil {
			t.Fatalf("add guest: %v", err)
		}
		g, err := env.matchday.AddGuest(ctx, "   ")
		if err != nil {
			t.Fatalf("add guest: %v", err)
		}
		if g.Name != "Guest 2" {
			t.Fatalf("guest name = %q, want %q", g.Name, "Guest 2")
		}
	})

	t.Run("capped at four guests", func(t *testing.T) {
		env := newTestEnv(t, rosterOf(5))

		for i := 0; i < MaxGuests; i++ {
			if _, err := env.matchday.AddGuest(ctx, ""); err != nil {
				t.Fatalf("add guest %d: %v", i+1, err)
			}
		}
		_, err := env.matchday.AddGuest(ctx, "one too many")
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("joins the waitlist when the match is full", func(t *testing.T) {
		env := newTestEnv(t, rosterOf(14))
		for i := 1; i <= 14; i++ {
			confirmPlayers(t, env, rosterID(i))
		}

		g, err := env.matchday.AddGuest(ctx, "late guest")
		if err != nil {
			t.Fatalf("add guest: %v", err)
		}
		if g.Status != participant.StatusWaiting {
			t.Fatalf("guest status = %s, want %s", g.Status, participant.StatusWaiting)
		}
		if g.WaitingTimestamp == nil {
			t.Fatal("waitlisted guest has no waiting timestamp")
		}
	})

	t.Run("marking a guest out removes them entirely", func(t *testing.T) {
		env := newTestEnv(t, rosterOf(5))

		g, err := env.matchday.AddGuest(ctx, "leaver")
		if err != nil {
			t.Fatalf("add guest: %v", err)
		}
		if err := env.matchday.SetAvailability(ctx, g.ID, participant.StatusOut); err != nil {
			t.Fatalf("set guest out: %v", err)
		}

		_, found, err := env.guests.GetByID(ctx, g.ID)
		if err != nil {
			t.Fatalf("get guest: %v", err)
		}
		if found {
			t.Fatal("guest still registered after opting out")
		}
	})
}

func TestDraft_ByPoints(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, rosterOf(14))
	for i := 1; i <= 14; i++ {
		confirmPlayers(t, env, rosterID(i))
	}

	state, err := env.matchday.Draft(ctx, DraftByPoints)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}

	if state.Phase != gameday.PhaseTeams {
		t.Fatalf("phase = %s, want %s", state.Phase, gameday.PhaseTeams)
	}
	if state.Teams == nil {
		t.Fatal("draft produced no teams")
	}
	if len(state.Teams.TeamA) != 7 || len(state.Teams.TeamB) != 7 {
		t.Fatalf("team sizes %d/%d, want 7/7", len(state.Teams.TeamA), len(state.Teams.TeamB))
	}

	seen := make(map[string]int)
	for _, snap := range append(append([]match.Snapshot{}, state.Teams.TeamA...), state.Teams.TeamB...) {
		seen[snap.ID]++
	}
	for i := 1; i <= 14; i++ {
		if seen[rosterID(i)] != 1 {
			t.Fatalf("r%d drafted %d times", i, seen[rosterID(i)])
		}
	}

	// Best-ranked player opens team A, worst-ranked opens team B.
	if state.Teams.TeamA[0].ID != "r1" {
		t.Fatalf("teamA first pick = %s, want r1", state.Teams.TeamA[0].ID)
	}
	if state.Teams.TeamB[0].ID != "r14" {
		t.Fatalf("teamB first pick = %s, want r14", state.Teams.TeamB[0].ID)
	}
}

func TestDraft_Preconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("requires exactly fourteen confirmed", func(t *testing.T) {
		env := newTestEnv(t, rosterOf(14))
		for i := 1; i <= 13; i++ {
			confirmPlayers(t, env, rosterID(i))
		}

		_, err := env.matchday.Draft(ctx, DraftByPoints)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		env := newTestEnv(t, rosterOf(14))
		for i := 1; i <= 14; i++ {
			confirmPlayers(t, env, rosterID(i))
		}

		_, err := env.matchday.Draft(ctx, DraftMethod("coin-flip"))
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("only from the availability phase", func(t *testing.T) {
		env := newTestEnv(t, rosterOf(14))
		for i := 1; i <= 14; i++ {
			confirmPlayers(t, env, rosterID(i))
		}
		if _, err := env.matchday.Draft(ctx, DraftByPoints); err != nil {
			t.Fatalf("first draft: %v", err)
		}

		_, err := env.matchday.Draft(ctx, DraftByPoints)
		if !errors.Is(err, ErrPhaseLocked) {
			t.Fatalf("expected ErrPhaseLocked, got %v", err)
		}
	})
}

func TestManualDraftFlow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, rosterOf(14))
	for i := 1; i <= 14; i++ {
		confirmPlayers(t, env, rosterID(i))
	}

	if _, err := env.matchday.Draft(ctx, DraftManual); err != nil {
		t.Fatalf("start manual draft: %v", err)
	}

	t.Run("confirm rejects unbalanced teams", func(t *testing.T) {
		_, err := env.matchday.ConfirmManualDraft(ctx)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("reassignment moves a player between sides without duplicating", func(t *testing.T) {
		if _, err := env.matchday.AssignPlayer(ctx, "r1", gameday.AssignTeamA); err != nil {
			t.Fatalf("assign r1: %v", err)
		}
		state, err := env.matchday.AssignPlayer(ctx, "r1", gameday.AssignTeamB)
		if err != nil {
			t.Fatalf("reassign r1: %v", err)
		}
		if len(state.ManualTeams.TeamA) != 0 || len(state.ManualTeams.TeamB) != 1 {
			t.Fatalf("manual teams %d/%d after reassignment, want 0/1",
				len(state.ManualTeams.TeamA), len(state.ManualTeams.TeamB))
		}

		state, err = env.matchday.AssignPlayer(ctx, "r1", gameday.AssignUnassigned)
		if err != nil {
			t.Fatalf("unassign r1: %v", err)
		}
		if state.ManualTeams.Contains("r1") {
			t.Fatal("r1 still assigned after removal")
		}
	})

	t.Run("only confirmed participants can be placed", func(t *testing.T) {
		_, err := env.matchday.AssignPlayer(ctx, "nobody", gameday.AssignTeamA)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("full placement confirms to the teams phase", func(t *testing.T) {
		for i := 1; i <= 7; i++ {
			if _, err := env.matchday.AssignPlayer(ctx, rosterID(i), gameday.AssignTeamA); err != nil {
				t.Fatalf("assign r%d: %v", i, err)
			}
		}
		for i := 8; i <= 14; i++ {
			if _, err := env.matchday.AssignPlayer(ctx, rosterID(i), gameday.AssignTeamB); err != nil {
				t.Fatalf("assign r%d: %v", i, err)
			}
		}

		state, err := env.matchday.ConfirmManualDraft(ctx)
		if err != nil {
			t.Fatalf("confirm manual draft: %v", err)
		}
		if state.Phase != gameday.PhaseTeams {
			t.Fatalf("phase = %s, want %s", state.Phase, gameday.PhaseTeams)
		}
		if state.Teams == nil || len(state.Teams.TeamA) != 7 || len(state.Teams.TeamB) != 7 {
			t.Fatal("confirmed draft did not freeze 7v7 teams")
		}
	})
}

func TestTogglePenalty(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, rosterOf(14))
	for i := 1; i <= 14; i++ {
		confirmPlayers(t, env, rosterID(i))
	}
	if _, err := env.matchday.Draft(ctx, DraftByPoints); err != nil {
		t.Fatalf("draft: %v", err)
	}

	t.Run("toggle on, same again clears, different replaces", func(t *testing.T) {
		state, err := env.matchday.TogglePenalty(ctx, "r3", match.PenaltyLate)
		if err != nil {
			t.Fatalf("toggle late: %v", err)
		}
		if state.Penalties["r3"] != match.PenaltyLate {
			t.Fatalf("penalty = %q, want %q", state.Penalties["r3"], match.PenaltyLate)
		}

		state, err = env.matchday.TogglePenalty(ctx, "r3", match.PenaltyNoShow)
		if err != nil {
			t.Fatalf("toggle no-show: %v", err)
		}
		if state.Penalties["r3"] != match.PenaltyNoShow {
			t.Fatalf("penalty = %q, want %q", state.Penalties["r3"], match.PenaltyNoShow)
		}

		state, err = env.matchday.TogglePenalty(ctx, "r3", match.PenaltyNoShow)
		if err != nil {
			t.Fatalf("toggle off: %v", err)
		}
		if _, ok := state.Penalties["r3"]; ok {
			t.Fatal("penalty not cleared by repeated toggle")
		}
	})

	t.Run("rejects players outside the drafted teams", func(t *testing.T) {
		_, err := env.matchday.TogglePenalty(ctx, "nobody", match.PenaltyLate)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestTogglePenalty_GuestsExempt(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, rosterOf(13))
	for i := 1; i <= 13; i++ {
		confirmPlayers(t, env, rosterID(i))
	}
	g, err := env.matchday.AddGuest(ctx, "ringer")
	if err != nil {
		t.Fatalf("add guest: %v", err)
	}
	if _, err := env.matchday.Draft(ctx, DraftByPoints); err != nil {
		t.Fatalf("draft: %v", err)
	}

	_, err = env.matchday.TogglePenalty(ctx, g.ID, match.PenaltyLate)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRecordResult(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *testEnv {
		env := newTestEnv(t, rosterOf(14))
		for i := 1; i <= 14; i++ {
			confirmPlayers(t, env, rosterID(i))
		}
		if _, err := env.matchday.Draft(ctx, DraftByPoints); err != nil {
			t.Fatalf("draft: %v", err)
		}
		return env
	}

	t.Run("winners take three, losers none, draws two each", func(t *testing.T) {
		env := setup(t)
		state, err := env.matchday.State(ctx)
		if err != nil {
			t.Fatalf("get state: %v", err)
		}
		before := make(map[string]participant.Player)
		for i := 1; i <= 14; i++ {
			before[rosterID(i)] = mustPlayer(t, env, rosterID(i))
		}

		entry, err := env.matchday.RecordResult(ctx, 3, 1)
		if err != nil {
			t.Fatalf("record result: %v", err)
		}
		if entry.Match.Result != match.ResultTeamA {
			t.Fatalf("result = %s, want %s", entry.Match.Result, match.ResultTeamA)
		}

		for _, snap := range state.Teams.TeamA {
			p := mustPlayer(t, env, snap.ID)
			prev := before[snap.ID]
			if p.Points != prev.Points+3 {
				t.Fatalf("%s points = %d, want %d", snap.ID, p.Points, prev.Points+3)
			}
			if p.Wins != prev.Wins+1 || p.MatchesPlayed != prev.MatchesPlayed+1 {
				t.Fatalf("%s stats not incremented: %+v", snap.ID, p)
			}
			if len(p.Form) == 0 || p.Form[0] != participant.FormWin {
				t.Fatalf("%s form = %v, want leading W", snap.ID, p.Form)
			}
		}
		for _, snap := range state.Teams.TeamB {
			p := mustPlayer(t, env, snap.ID)
			prev := before[snap.ID]
			if p.Points != prev.Points {
				t.Fatalf("%s points = %d, want unchanged %d", snap.ID, p.Points, prev.Points)
			}
			if p.Losses != prev.Losses+1 {
				t.Fatalf("%s losses = %d, want %d", snap.ID, p.Losses, prev.Losses+1)
			}
			if len(p.Form) == 0 || p.Form[0] != participant.FormLoss {
				t.Fatalf("%s form = %v, want leading L", snap.ID, p.Form)
			}
		}

		final, err := env.matchday.State(ctx)
		if err != nil {
			t.Fatalf("get state: %v", err)
		}
		if final.Phase != gameday.PhaseResults {
			t.Fatalf("phase = %s, want %s", final.Phase, gameday.PhaseResults)
		}
		if final.Winner == nil || *final.Winner != match.ResultTeamA {
			t.Fatalf("winner = %v, want %s", final.Winner, match.ResultTeamA)
		}
	})

	t.Run("a no-show forfeits result points and hands the other side the bonus", func(t *testing.T) {
		env := setup(t)
		state, err := env.matchday.State(ctx)
		if err != nil {
			t.Fatalf("get state: %v", err)
		}
		noShowID := state.Teams.TeamA[0].ID
		if _, err := env.matchday.TogglePenalty(ctx, noShowID, match.PenaltyNoShow); err != nil {
			t.Fatalf("toggle no-show: %v", err)
		}

		before := make(map[string]participant.Player)
		for i := 1; i <= 14; i++ {
			before[rosterID(i)] = mustPlayer(t, env, rosterID(i))
		}

		// Team A wins 3-1, but its no-show earns nothing and still pays the
		// deduction, while team B collects the imbalance bonus.
		view, err := env.matchday.RecordResult(ctx, 3, 1)
		if err != nil {
			t.Fatalf("record result: %v", err)
		}
		if view.Deltas[noShowID] != -3 {
			t.Fatalf("no-show delta = %d, want -3", view.Deltas[noShowID])
		}

		noShow := mustPlayer(t, env, noShowID)
		prev := before[noShowID]
		if want := prev.Points - 3; noShow.Points != want {
			t.Fatalf("no-show points = %d, want %d", noShow.Points, want)
		}
		if noShow.NoShowCount != prev.NoShowCount+1 {
			t.Fatalf("no-show counter = %d, want %d", noShow.NoShowCount, prev.NoShowCount+1)
		}
		if noShow.Wins != prev.Wins+1 {
			t.Fatalf("no-show still participates in stats: wins = %d, want %d", noShow.Wins, prev.Wins+1)
		}

		for _, snap := range state.Teams.TeamA[1:] {
			p := mustPlayer(t, env, snap.ID)
			if want := before[snap.ID].Points + 3; p.Points != want {
				t.Fatalf("%s points = %d, want %d", snap.ID, p.Points, want)
			}
		}
		for _, snap := range state.Teams.TeamB {
			p := mustPlayer(t, env, snap.ID)
			if want := before[snap.ID].Points + 1; p.Points != want {
				t.Fatalf("%s points = %d, want loss plus bonus %d", snap.ID, p.Points, want)
			}
		}
	})

	t.Run("guests appear in the match but never in the accounting", func(t *testing.T) {
		env := newTestEnv(t, rosterOf(13))
		for i := 1; i <= 13; i++ {
			confirmPlayers(t, env, rosterID(i))
		}
		g, err := env.matchday.AddGuest(ctx, "ringer")
		if err != nil {
			t.Fatalf("add guest: %v", err)
		}
		if _, err := env.matchday.Draft(ctx, DraftByPoints); err != nil {
			t.Fatalf("draft: %v", err)
		}

		entry, err := env.matchday.RecordResult(ctx, 2, 2)
		if err != nil {
			t.Fatalf("record result: %v", err)
		}
		if !entry.Match.Teams.Contains(g.ID) {
			t.Fatal("guest missing from the frozen match teams")
		}

		for i := 1; i <= 13; i++ {
			p := mustPlayer(t, env, rosterID(i))
			if p.Draws != 1 {
				t.Fatalf("r%d draws = %d, want 1", i, p.Draws)
			}
		}
	})

	t.Run("negative scores rejected", func(t *testing.T) {
		env := setup(t)
		_, err := env.matchday.RecordResult(ctx, -1, 0)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("requires drafted teams", func(t *testing.T) {
		env := newTestEnv(t, rosterOf(14))
		_, err := env.matchday.RecordResult(ctx, 1, 0)
		if !errors.Is(err, ErrPhaseLocked) {
			t.Fatalf("expected ErrPhaseLocked, got %v", err)
		}
	})

	t.Run("stray penalty in a restored state is rejected before any accounting", func(t *testing.T) {
		env := newTestEnv(t, rosterOf(15))
		for i := 1; i <= 14; i++ {
			confirmPlayers(t, env, rosterID(i))
		}
		if _, err := env.matchday.Draft(ctx, DraftByPoints); err != nil {
			t.Fatalf("draft: %v", err)
		}

		// Corrupt the stored state the way a damaged snapshot would: a
		// penalty against a rostered player who is on neither team.
		state, err := env.game.Get(ctx)
		if err != nil {
			t.Fatalf("get state: %v", err)
		}
		state.Penalties["r15"] = match.PenaltyNoShow
		if err := env.game.Set(ctx, state); err != nil {
			t.Fatalf("set state: %v", err)
		}

		before := make(map[string]participant.Player)
		for i := 1; i <= 15; i++ {
			before[rosterID(i)] = mustPlayer(t, env, rosterID(i))
		}

		if _, err := env.matchday.RecordResult(ctx, 3, 1); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}

		// A rejected result must not have moved a single point or counter.
		for i := 1; i <= 15; i++ {
			got := mustPlayer(t, env, rosterID(i))
			want := before[rosterID(i)]
			if got.Points != want.Points || got.MatchesPlayed != want.MatchesPlayed ||
				got.NoShowCount != want.NoShowCount || got.Wins != want.Wins {
				t.Fatalf("r%d mutated by rejected result:\n got %+v\nwant %+v", i, got, want)
			}
		}
		history, err := env.matches.List(ctx)
		if err != nil {
			t.Fatalf("list matches: %v", err)
		}
		if len(history) != 0 {
			t.Fatalf("rejected result reached the ledger: %d entries", len(history))
		}
	})
}

func TestResetGame(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, rosterOf(13))
	for i := 1; i <= 13; i++ {
		confirmPlayers(t, env, rosterID(i))
	}
	if _, err := env.matchday.AddGuest(ctx, "ringer"); err != nil {
		t.Fatalf("add guest: %v", err)
	}
	if _, err := env.matchday.Draft(ctx, DraftByPoints); err != nil {
		t.Fatalf("draft: %v", err)
	}
	if _, err := env.matchday.RecordResult(ctx, 2, 0); err != nil {
		t.Fatalf("record result: %v", err)
	}

	if err := env.matchday.ResetGame(ctx); err != nil {
		t.Fatalf("reset game: %v", err)
	}

	state, err := env.matchday.State(ctx)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.Phase != gameday.PhaseAvailability {
		t.Fatalf("phase = %s, want %s", state.Phase, gameday.PhaseAvailability)
	}
	if state.Teams != nil {
		t.Fatal("teams survived the reset")
	}

	guests, err := env.guests.List(ctx)
	if err != nil {
		t.Fatalf("list guests: %v", err)
	}
	if len(guests) != 0 {
		t.Fatalf("%d guests survived the reset", len(guests))
	}

	for i := 1; i <= 13; i++ {
		p := mustPlayer(t, env, rosterID(i))
		if p.Status != participant.StatusUndecided {
			t.Fatalf("r%d status = %s, want %s", i, p.Status, participant.StatusUndecided)
		}
		if p.Points == 0 && p.MatchesPlayed == 0 {
			t.Fatalf("r%d lost its statistics on game reset", i)
		}
	}

	// The ledger is untouched by a game reset.
	history, err := env.matches.List(ctx)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("ledger has %d entries after reset, want 1", len(history))
	}
}

func TestCancelDraft(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, rosterOf(14))
	for i := 1; i <= 14; i++ {
		confirmPlayers(t, env, rosterID(i))
	}
	if _, err := env.matchday.Draft(ctx, DraftByPoints); err != nil {
		t.Fatalf("draft: %v", err)
	}

	if err := env.matchday.CancelDraft(ctx); err != nil {
		t.Fatalf("cancel draft: %v", err)
	}

	state, err := env.matchday.State(ctx)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.Phase != gameday.PhaseAvailability {
		t.Fatalf("phase = %s, want %s", state.Phase, gameday.PhaseAvailability)
	}

	// Availability choices survive a cancelled draft.
	if got := mustPlayer(t, env, "r1").Status; got != participant.StatusIn {
		t.Fatalf("r1 status = %s, want %s", got, participant.StatusIn)
	}
}
