package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/hirafus/matchday/internal/domain/participant"
)

// MaxPlayersIn is the fixed capacity of the "in" bucket across roster players
// and guests combined.
const MaxPlayersIn = 14

// MaxGuests caps the guest registry per matchday.
const MaxGuests = 4

// loadParticipants returns the combined roster and guest pool as the tagged
// participant union, roster first.
func loadParticipants(ctx context.Context, players participant.Repository, guests participant.GuestRegistry) ([]participant.Participant, error) {
	roster, err := players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	guestList, err := guests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}

	out := make([]participant.Participant, 0, len(roster)+len(guestList))
	for _, p := range roster {
		out = append(out, participant.FromPlayer(p))
	}
	for _, g := range guestList {
		out = append(out, participant.FromGuest(g))
	}

	return out, nil
}

func countIn(participants []participant.Participant) int {
	count := 0
	for _, p := range participants {
		if p.Status() == participant.StatusIn {
			count++
		}
	}
	return count
}

func participantsIn(participants []participant.Participant) []participant.Participant {
	out := make([]participant.Participant, 0, MaxPlayersIn)
	for _, p := range participants {
		if p.Status() == participant.StatusIn {
			out = append(out, p)
		}
	}
	return out
}

// waitingQueue returns the waitlist ordered by waiting timestamp ascending.
// The sort is stable, so equal timestamps keep their input order.
func waitingQueue(participants []participant.Participant) []participant.Participant {
	out := make([]participant.Participant, 0, len(participants))
	for _, p := range participants {
		if p.Status() == participant.StatusWaiting {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		left, right := out[i].WaitingTimestamp(), out[j].WaitingTimestamp()
		switch {
		case left == nil:
			return right != nil
		case right == nil:
			return false
		default:
			return left.Before(*right)
		}
	})
	return out
}

// promoteWaiting fills free capacity from the waitlist in FIFO order, writing
// promoted participants back to their repository.
func promoteWaiting(ctx context.Context, players participant.Repository, guests participant.GuestRegistry) error {
	pool, err := loadParticipants(ctx, players, guests)
	if err != nil {
		return err
	}

	free := MaxPlayersIn - countIn(pool)
	if free <= 0 {
		return nil
	}

	for _, promoted := range waitingQueue(pool) {
		if free == 0 {
			break
		}
		free--

		if promoted.Guest != nil {
			g := *promoted.Guest
			g.Status = participant.StatusIn
			g.WaitingTimestamp = nil
			if err := guests.Upsert(ctx, g); err != nil {
				return fmt.Errorf("promote guest %s: %w", g.ID, err)
			}
			continue
		}

		p := *promoted.Player
		p.Status = participant.StatusIn
		p.WaitingTimestamp = nil
		if err := players.Upsert(ctx, p); err != nil {
			return fmt.Errorf("promote player %s: %w", p.ID, err)
		}
	}

	return nil
}

// medianRosterPoints seeds guests with a fair draft value: the median of the
// roster points sorted descending, or 50 for an empty roster.
func medianRosterPoints(roster []participant.Player) int {
	if len(roster) == 0 {
		return 50
	}
	points := make([]int, 0, len(roster))
	for _, p := range roster {
		points = append(points, p.Points)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(points)))
	return points[len(points)/2]
}
