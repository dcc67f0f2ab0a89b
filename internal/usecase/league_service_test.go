package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/hirafus/matchday/internal/domain/league"
	"github.com/hirafus/matchday/internal/domain/participant"
)

func TestStandings(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, []participant.Player{
		{ID: "a", Name: "Anna", Points: 12, Status: participant.StatusUndecided},
		{ID: "b", Name: "Ben", Points: 30, Status: participant.StatusUndecided},
		{ID: "c", Name: "Cleo", Points: 12, Status: participant.StatusUndecided},
		{ID: "d", Name: "Dani", Points: 25, Status: participant.StatusUndecided},
	})

	table, err := env.league.Standings(ctx)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}

	gotOrder := make([]string, 0, len(table))
	for _, p := range table {
		gotOrder = append(gotOrder, p.ID)
	}
	// Ties keep roster order: Anna registered before Cleo.
	wantOrder := []string{"b", "d", "a", "c"}
	for i, want := range wantOrder {
		if gotOrder[i] != want {
			t.Fatalf("standings order %v, want %v", gotOrder, wantOrder)
		}
	}
}

func TestStandings_ExcludeGuests(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, rosterOf(5))

	g, err := env.matchday.AddGuest(ctx, "ringer")
	if err != nil {
		t.Fatalf("add guest: %v", err)
	}

	table, err := env.league.Standings(ctx)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(table) != 5 {
		t.Fatalf("standings has %d rows, want 5", len(table))
	}
	for _, p := range table {
		if p.ID == g.ID {
			t.Fatal("guest appears in the standings")
		}
	}
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, rosterOf(5))

	t.Run("valid update persists", func(t *testing.T) {
		updated, err := env.league.UpdateSettings(ctx, league.Settings{
			LeagueName:    "Sunday League",
			Location:      "South Pitch",
			TotalMatches:  20,
			LatePenalty:   1,
			NoShowPenalty: 5,
			BonusPoint:    2,
		})
		if err != nil {
			t.Fatalf("update settings: %v", err)
		}
		if updated.LeagueName != "Sunday League" || updated.NoShowPenalty != 5 {
			t.Fatalf("unexpected settings: %+v", updated)
		}

		stored, err := env.league.GetSettings(ctx)
		if err != nil {
			t.Fatalf("get settings: %v", err)
		}
		if stored != updated {
			t.Fatalf("stored settings %+v, want %+v", stored, updated)
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		_, err := env.league.UpdateSettings(ctx, league.Settings{
			LeagueName:   "",
			TotalMatches: 20,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}

		_, err = env.league.UpdateSettings(ctx, league.Settings{
			LeagueName:   "x",
			TotalMatches: 0,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}
