package draft

import (
	"sort"

	"github.com/hirafus/matchday/internal/domain/participant"
)

// TeamSize is the fixed side size for a drafted match.
const TeamSize = 7

// Capacity is the fixed number of confirmed participants a draft requires.
const Capacity = 2 * TeamSize

// Rank sorts participants by points descending. The sort is stable so equal
// point totals keep their input order, which keeps the draft deterministic.
func Rank(participants []participant.Participant) []participant.Participant {
	ranked := make([]participant.Participant, len(participants))
	copy(ranked, participants)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Points() > ranked[j].Points()
	})
	return ranked
}

// Snake partitions a ranked (points descending) pool into two balanced teams
// using the serpent pattern: Team A opens with the best remaining pick and
// Team B with the worst, then the high/low pair alternates sides each round
// (B high + A low, then A high + B low, and so on) until the pool is empty.
// With a full pool of 14 this is the 1-2-2-2-2-2-2-1 pick sequence and both
// teams end with exactly seven players.
func Snake(ranked []participant.Participant) (teamA, teamB []participant.Participant) {
	picks := make([]participant.Participant, len(ranked))
	copy(picks, ranked)

	teamA = make([]participant.Participant, 0, len(picks)/2)
	teamB = make([]participant.Participant, 0, len(picks)/2)

	takeHigh := func() participant.Participant {
		p := picks[0]
		picks = picks[1:]
		return p
	}
	takeLow := func() participant.Participant {
		p := picks[len(picks)-1]
		picks = picks[:len(picks)-1]
		return p
	}

	if len(picks) == 0 {
		return teamA, teamB
	}

	teamA = append(teamA, takeHigh())
	if len(picks) > 0 {
		teamB = append(teamB, takeLow())
	}

	for len(picks) > 0 {
		teamB = append(teamB, takeHigh())
		if len(picks) > 0 {
			teamA = append(teamA, takeLow())
		}

		if len(picks) > 0 {
			teamA = append(teamA, takeHigh())
			if len(picks) > 0 {
				teamB = append(teamB, takeLow())
			}
		}
	}

	return teamA, teamB
}
