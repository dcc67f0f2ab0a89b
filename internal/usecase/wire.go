package usecase

import (
	"fmt"
	"time"

	"github.com/hirafus/matchday/internal/domain/gameday"
	"github.com/hirafus/matchday/internal/domain/league"
	"github.com/hirafus/matchday/internal/domain/match"
	"github.com/hirafus/matchday/internal/domain/participant"
)

// Wire types are the stored and exported JSON shapes. They stay stable across
// releases so old backups keep importing; waiting timestamps travel as epoch
// milliseconds.

type wirePlayer struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Points           int      `json:"points"`
	Status           string   `json:"status"`
	MatchesPlayed    int      `json:"matchesPlayed"`
	Wins             int      `json:"wins"`
	Draws            int      `json:"draws"`
	Losses           int      `json:"losses"`
	Form             []string `json:"form"`
	PhotoURL         string   `json:"photoURL,omitempty"`
	WaitingTimestamp *int64   `json:"waitingTimestamp,omitempty"`
	LatePenalties    int      `json:"latePenalties"`
	NoShowPenalties  int      `json:"noShowPenalties"`
}

type wireGuest struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Points           int    `json:"points"`
	Status           string `json:"status"`
	WaitingTimestamp *int64 `json:"waitingTimestamp,omitempty"`
	IsGuest          bool   `json:"isGuest"`
}

type wireMatchPlayer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL,omitempty"`
	IsGuest  bool   `json:"isGuest,omitempty"`
}

type wireTeams struct {
	TeamA []wireMatchPlayer `json:"teamA"`
	TeamB []wireMatchPlayer `json:"teamB"`
}

type wireMatch struct {
	ID        string            `json:"id"`
	Date      string            `json:"date"`
	Teams     wireTeams         `json:"teams"`
	Result    string            `json:"result"`
	ScoreA    int               `json:"scoreA"`
	ScoreB    int               `json:"scoreB"`
	Penalties map[string]string `json:"penalties"`
}

type wireSettings struct {
	LeagueName    string `json:"leagueName"`
	Location      string `json:"location"`
	TotalMatches  int    `json:"totalMatches"`
	LatePenalty   int    `json:"latePenalty"`
	NoShowPenalty int    `json:"noShowPenalty"`
	BonusPoint    int    `json:"bonusPoint"`
}

type wireGameState struct {
	Phase       string            `json:"gamePhase"`
	Teams       *wireTeams        `json:"teams,omitempty"`
	ManualTeams *wireTeams        `json:"manualTeams,omitempty"`
	ScoreA      int               `json:"scoreA"`
	ScoreB      int               `json:"scoreB"`
	Winner      *string           `json:"winner,omitempty"`
	Penalties   map[string]string `json:"penalties"`
}

func wireFromPlayer(p participant.Player) wirePlayer {
	form := make([]string, 0, len(p.Form))
	for _, f := range p.Form {
		form = append(form, string(f))
	}
	return wirePlayer{
		ID:               p.ID,
		Name:             p.Name,
		Points:           p.Points,
		Status:           string(p.Status),
		MatchesPlayed:    p.MatchesPlayed,
		Wins:             p.Wins,
		Draws:            p.Draws,
		Losses:           p.Losses,
		Form:             form,
		PhotoURL:         p.PhotoURL,
		WaitingTimestamp: wireFromTimestamp(p.WaitingTimestamp),
		LatePenalties:    p.LateCount,
		NoShowPenalties:  p.NoShowCount,
	}
}

func (w wirePlayer) toPlayer() (participant.Player, error) {
	status, err := participant.ParseStatus(w.Status)
	if err != nil {
		return participant.Player{}, fmt.Errorf("player %s: %w", w.ID, err)
	}
	form := make([]participant.FormEntry, 0, len(w.Form))
	for _, f := range w.Form {
		switch entry := participant.FormEntry(f); entry {
		case participant.FormWin, participant.FormDraw, participant.FormLoss:
			form = append(form, entry)
		default:
			return participant.Player{}, fmt.Errorf("player %s: invalid form entry %q", w.ID, f)
		}
	}
	if len(form) > participant.FormSize {
		form = form[:participant.FormSize]
	}
	p := participant.Player{
		ID:               w.ID,
		Name:             w.Name,
		Points:           w.Points,
		Status:           status,
		MatchesPlayed:    w.MatchesPlayed,
		Wins:             w.Wins,
		Draws:            w.Draws,
		Losses:           w.Losses,
		Form:             form,
		PhotoURL:         w.PhotoURL,
		WaitingTimestamp: wireToTimestamp(w.WaitingTimestamp),
		LateCount:        w.LatePenalties,
		NoShowCount:      w.NoShowPenalties,
	}
	if err := p.Validate(); err != nil {
		return participant.Player{}, err
	}
	return p, nil
}

func wireFromGuest(g participant.Guest) wireGuest {
	return wireGuest{
		ID:               g.ID,
		Name:             g.Name,
		Points:           g.Points,
		Status:           string(g.Status),
		WaitingTimestamp: wireFromTimestamp(g.WaitingTimestamp),
		IsGuest:          true,
	}
}

func (w wireGuest) toGuest() (participant.Guest, error) {
	status, err := participant.ParseStatus(w.Status)
	if err != nil {
		return participant.Guest{}, fmt.Errorf("guest %s: %w", w.ID, err)
	}
	g := participant.Guest{
		ID:               w.ID,
		Name:             w.Name,
		Points:           w.Points,
		Status:           status,
		WaitingTimestamp: wireToTimestamp(w.WaitingTimestamp),
	}
	if err := g.Validate(); err != nil {
		return participant.Guest{}, err
	}
	return g, nil
}

func wireFromSnapshots(side []match.Snapshot) []wireMatchPlayer {
	out := make([]wireMatchPlayer, 0, len(side))
	for _, snap := range side {
		out = append(out, wireMatchPlayer{
			ID:       snap.ID,
			Name:     snap.Name,
			PhotoURL: snap.PhotoURL,
			IsGuest:  snap.IsGuest,
		})
	}
	return out
}

func wireToSnapshots(side []wireMatchPlayer) []match.Snapshot {
	out := make([]match.Snapshot, 0, len(side))
	for _, wp := range side {
		out = append(out, match.Snapshot{
			ID:       wp.ID,
			Name:     wp.Name,
			PhotoURL: wp.PhotoURL,
			IsGuest:  wp.IsGuest,
		})
	}
	return out
}

func wireFromMatch(m match.Match) wireMatch {
	penalties := make(map[string]string, len(m.Penalties))
	for playerID, penalty := range m.Penalties {
		penalties[playerID] = string(penalty)
	}
	return wireMatch{
		ID:   m.ID,
		Date: m.Date.UTC().Format(time.RFC3339),
		Teams: wireTeams{
			TeamA: wireFromSnapshots(m.Teams.TeamA),
			TeamB: wireFromSnapshots(m.Teams.TeamB),
		},
		Result:    string(m.Result),
		Penalties: penalties,
		ScoreA:    m.ScoreA,
		ScoreB:    m.ScoreB,
	}
}

func (w wireMatch) toMatch() (match.Match, error) {
	date, err := time.Parse(time.RFC3339, w.Date)
	if err != nil {
		return match.Match{}, fmt.Errorf("match %s: invalid date %q", w.ID, w.Date)
	}
	penalties := make(map[string]match.Penalty, len(w.Penalties))
	for playerID, raw := range w.Penalties {
		penalty, err := match.ParsePenalty(raw)
		if err != nil {
			return match.Match{}, fmt.Errorf("match %s: %w", w.ID, err)
		}
		penalties[playerID] = penalty
	}
	m := match.Match{
		ID:   w.ID,
		Date: date,
		Teams: match.Teams{
			TeamA: wireToSnapshots(w.Teams.TeamA),
			TeamB: wireToSnapshots(w.Teams.TeamB),
		},
		Result:    match.Result(w.Result),
		ScoreA:    w.ScoreA,
		ScoreB:    w.ScoreB,
		Penalties: penalties,
	}
	if err := m.Validate(); err != nil {
		return match.Match{}, err
	}
	return m, nil
}

func wireFromSettings(s league.Settings) wireSettings {
	return wireSettings(s)
}

func (w wireSettings) toSettings() (league.Settings, error) {
	s := league.Settings(w)
	if err := s.Validate(); err != nil {
		return league.Settings{}, err
	}
	return s, nil
}

func wireFromGameState(s gameday.State) wireGameState {
	penalties := make(map[string]string, len(s.Penalties))
	for playerID, penalty := range s.Penalties {
		penalties[playerID] = string(penalty)
	}
	w := wireGameState{
		Phase:     string(s.Phase),
		ScoreA:    s.ScoreA,
		ScoreB:    s.ScoreB,
		Penalties: penalties,
	}
	if s.Teams != nil {
		w.Teams = &wireTeams{
			TeamA: wireFromSnapshots(s.Teams.TeamA),
			TeamB: wireFromSnapshots(s.Teams.TeamB),
		}
	}
	if len(s.ManualTeams.TeamA) > 0 || len(s.ManualTeams.TeamB) > 0 {
		w.ManualTeams = &wireTeams{
			TeamA: wireFromSnapshots(s.ManualTeams.TeamA),
			TeamB: wireFromSnapshots(s.ManualTeams.TeamB),
		}
	}
	if s.Winner != nil {
		winner := string(*s.Winner)
		w.Winner = &winner
	}
	return w
}

func (w wireGameState) toGameState() (gameday.State, error) {
	penalties := make(map[string]match.Penalty, len(w.Penalties))
	for playerID, raw := range w.Penalties {
		penalty, err := match.ParsePenalty(raw)
		if err != nil {
			return gameday.State{}, err
		}
		penalties[playerID] = penalty
	}
	s := gameday.State{
		Phase:     gameday.Phase(w.Phase),
		ScoreA:    w.ScoreA,
		ScoreB:    w.ScoreB,
		Penalties: penalties,
	}
	if w.Teams != nil {
		s.Teams = &match.Teams{
			TeamA: wireToSnapshots(w.Teams.TeamA),
			TeamB: wireToSnapshots(w.Teams.TeamB),
		}
	}
	if w.ManualTeams != nil {
		s.ManualTeams = match.Teams{
			TeamA: wireToSnapshots(w.ManualTeams.TeamA),
			TeamB: wireToSnapshots(w.ManualTeams.TeamB),
		}
	}
	if w.Winner != nil {
		winner := match.Result(*w.Winner)
		s.Winner = &winner
	}
	if err := s.Validate(); err != nil {
		return gameday.State{}, err
	}
	return s, nil
}

func wireFromTimestamp(ts *time.Time) *int64 {
	if ts == nil {
		return nil
	}
	ms := ts.UnixMilli()
	return &ms
}

func wireToTimestamp(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	ts := time.UnixMilli(*ms).UTC()
	return &ts
}
