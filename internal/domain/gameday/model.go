package gameday

import (
	"fmt"

	"github.com/hirafus/matchday/internal/domain/match"
)

// Phase is the stage the current matchday is in.
type Phase string

const (
	PhaseAvailability Phase = "availability"
	PhaseManualDraft  Phase = "manual-draft"
	PhaseTeams        Phase = "teams"
	PhaseResults      Phase = "results"
)

var AllPhases = map[Phase]struct{}{
	PhaseAvailability: {},
	PhaseManualDraft:  {},
	PhaseTeams:        {},
	PhaseResults:      {},
}

// TeamAssignment names the side a manual-draft pick goes to.
type TeamAssignment string

const (
	AssignTeamA      TeamAssignment = "teamA"
	AssignTeamB      TeamAssignment = "teamB"
	AssignUnassigned TeamAssignment = "unassigned"
)

func ParseTeamAssignment(v string) (TeamAssignment, error) {
	switch TeamAssignment(v) {
	case AssignTeamA, AssignTeamB, AssignUnassigned:
		return TeamAssignment(v), nil
	default:
		return "", fmt.Errorf("invalid team assignment: %q", v)
	}
}

// State is the in-progress matchday: phase, drafted teams, entered scores and
// penalty toggles. Teams hold frozen snapshots so a roster edit mid-match
// cannot corrupt the draft. State survives a restart but is cleared by game
// reset.
type State struct {
	Phase       Phase
	Teams       *match.Teams
	ManualTeams match.Teams
	ScoreA      int
	ScoreB      int
	Winner      *match.Result
	Penalties   map[string]match.Penalty
}

// NewState returns a fresh availability-phase state.
func NewState() State {
	return State{
		Phase:     PhaseAvailability,
		Penalties: make(map[string]match.Penalty),
	}
}

func (s State) Validate() error {
	if _, ok := AllPhases[s.Phase]; !ok {
		return fmt.Errorf("invalid game phase: %s", s.Phase)
	}
	if s.ScoreA < 0 || s.ScoreB < 0 {
		return fmt.Errorf("scores cannot be negative")
	}
	if (s.Phase == PhaseTeams || s.Phase == PhaseResults) && s.Teams == nil {
		return fmt.Errorf("phase %s requires drafted teams", s.Phase)
	}
	for participantID := range s.Penalties {
		if s.Teams == nil || !s.Teams.Contains(participantID) {
			return fmt.Errorf("penalty assessed against %s who is not on a drafted team", participantID)
		}
	}

	return nil
}
