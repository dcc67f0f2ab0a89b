package match

import (
	"fmt"
	"strings"
	"time"
)

// Result identifies the winning side of a recorded match.
type Result string

const (
	ResultTeamA Result = "A"
	ResultTeamB Result = "B"
	ResultDraw  Result = "Draw"
)

// ResultFromScores derives the result from the final score line.
func ResultFromScores(scoreA, scoreB int) Result {
	switch {
	case scoreA > scoreB:
		return ResultTeamA
	case scoreB > scoreA:
		return ResultTeamB
	default:
		return ResultDraw
	}
}

// Penalty is an assessment against one player for one match.
type Penalty string

const (
	PenaltyLate   Penalty = "late"
	PenaltyNoShow Penalty = "no-show"
)

func ParsePenalty(v string) (Penalty, error) {
	penalty := Penalty(strings.ToLower(strings.TrimSpace(v)))
	switch penalty {
	case PenaltyLate, PenaltyNoShow:
		return penalty, nil
	default:
		return "", fmt.Errorf("invalid penalty: %q", v)
	}
}

// Snapshot is the frozen per-player record kept inside a ledger entry. It is
// decoupled from the live roster so history stays stable after player edits
// or deletions.
type Snapshot struct {
	ID       string
	Name     string
	PhotoURL string
	IsGuest  bool
}

// Teams is a pair of frozen team rosters, used both for the active draft and
// inside recorded ledger entries.
type Teams struct {
	TeamA []Snapshot
	TeamB []Snapshot
}

// Contains reports whether the participant is on either side.
func (t Teams) Contains(participantID string) bool {
	for _, snap := range t.TeamA {
		if snap.ID == participantID {
			return true
		}
	}
	for _, snap := range t.TeamB {
		if snap.ID == participantID {
			return true
		}
	}
	return false
}

// Remove drops the participant from both sides.
func (t Teams) Remove(participantID string) Teams {
	out := Teams{
		TeamA: make([]Snapshot, 0, len(t.TeamA)),
		TeamB: make([]Snapshot, 0, len(t.TeamB)),
	}
	for _, snap := range t.TeamA {
		if snap.ID != participantID {
			out.TeamA = append(out.TeamA, snap)
		}
	}
	for _, snap := range t.TeamB {
		if snap.ID != participantID {
			out.TeamB = append(out.TeamB, snap)
		}
	}
	return out
}

// Match is one ledger entry. Entries are created exactly once and never
// mutated; deletion reverses their effect on the roster.
type Match struct {
	ID        string
	Date      time.Time
	Teams     Teams
	Result    Result
	ScoreA    int
	ScoreB    int
	Penalties map[string]Penalty
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.ScoreA < 0 || m.ScoreB < 0 {
		return fmt.Errorf("scores cannot be negative")
	}
	if m.Result != ResultFromScores(m.ScoreA, m.ScoreB) {
		return fmt.Errorf("result %q does not match score %d-%d", m.Result, m.ScoreA, m.ScoreB)
	}

	inMatch := make(map[string]struct{}, len(m.Teams.TeamA)+len(m.Teams.TeamB))
	for _, snap := range m.Teams.TeamA {
		inMatch[snap.ID] = struct{}{}
	}
	for _, snap := range m.Teams.TeamB {
		inMatch[snap.ID] = struct{}{}
	}
	for playerID := range m.Penalties {
		if _, ok := inMatch[playerID]; !ok {
			return fmt.Errorf("penalty assessed against %s who is not in the match", playerID)
		}
	}

	return nil
}

// Side reports which team a participant played on, if any.
func (m Match) Side(participantID string) (onTeamA bool, found bool) {
	for _, snap := range m.Teams.TeamA {
		if snap.ID == participantID {
			return true, true
		}
	}
	for _, snap := range m.Teams.TeamB {
		if snap.ID == participantID {
			return false, true
		}
	}
	return false, false
}

// NoShowCounts counts the no-show penalties on each side.
func (m Match) NoShowCounts() (teamA, teamB int) {
	for _, snap := range m.Teams.TeamA {
		if m.Penalties[snap.ID] == PenaltyNoShow {
			teamA++
		}
	}
	for _, snap := range m.Teams.TeamB {
		if m.Penalties[snap.ID] == PenaltyNoShow {
			teamB++
		}
	}
	return teamA, teamB
}
