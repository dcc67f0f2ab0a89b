package httpapi

import (
	"time"

	"github.com/hirafus/matchday/internal/domain/gameday"
	"github.com/hirafus/matchday/internal/domain/league"
	"github.com/hirafus/matchday/internal/domain/match"
	"github.com/hirafus/matchday/internal/domain/participant"
	"github.com/hirafus/matchday/internal/usecase"
)

type participantDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Points           int    `json:"points"`
	Status           string `json:"status"`
	PhotoURL         string `json:"photoURL,omitempty"`
	IsGuest          bool   `json:"isGuest"`
	WaitingTimestamp *int64 `json:"waitingTimestamp,omitempty"`
}

type playerDTO struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Points          int      `json:"points"`
	Status          string   `json:"status"`
	MatchesPlayed   int      `json:"matchesPlayed"`
	Wins            int      `json:"wins"`
	Draws           int      `json:"draws"`
	Losses          int      `json:"losses"`
	Form            []string `json:"form"`
	PhotoURL        string   `json:"photoURL,omitempty"`
	LatePenalties   int      `json:"latePenalties"`
	NoShowPenalties int      `json:"noShowPenalties"`
}

type guestDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Points  int    `json:"points"`
	Status  string `json:"status"`
	IsGuest bool   `json:"isGuest"`
}

type participantsViewDTO struct {
	In      []participantDTO `json:"in"`
	Waiting []participantDTO `json:"waiting"`
	Others  []participantDTO `json:"others"`
}

type matchPlayerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL,omitempty"`
	IsGuest  bool   `json:"isGuest,omitempty"`
}

type teamsDTO struct {
	TeamA []matchPlayerDTO `json:"teamA"`
	TeamB []matchPlayerDTO `json:"teamB"`
}

type gameStateDTO struct {
	Phase       string            `json:"gamePhase"`
	Teams       *teamsDTO         `json:"teams,omitempty"`
	ManualTeams *teamsDTO         `json:"manualTeams,omitempty"`
	ScoreA      int               `json:"scoreA"`
	ScoreB      int               `json:"scoreB"`
	Winner      *string           `json:"winner,omitempty"`
	Penalties   map[string]string `json:"penalties"`
}

type matchDTO struct {
	ID          string            `json:"id"`
	Date        string            `json:"date"`
	Teams       teamsDTO          `json:"teams"`
	Result      string            `json:"result"`
	ScoreA      int               `json:"scoreA"`
	ScoreB      int               `json:"scoreB"`
	Penalties   map[string]string `json:"penalties"`
	PointDeltas map[string]int    `json:"pointDeltas"`
}

type settingsDTO struct {
	LeagueName    string `json:"leagueName" validate:"required"`
	Location      string `json:"location"`
	TotalMatches  int    `json:"totalMatches" validate:"required,min=1"`
	LatePenalty   int    `json:"latePenalty" validate:"min=0"`
	NoShowPenalty int    `json:"noShowPenalty" validate:"min=0"`
	BonusPoint    int    `json:"bonusPoint" validate:"min=0"`
}

type seasonProgressDTO struct {
	Played int `json:"played"`
	Total  int `json:"total"`
}

func participantToDTO(p participant.Participant) participantDTO {
	dto := participantDTO{
		ID:       p.ID(),
		Name:     p.Name(),
		Points:   p.Points(),
		Status:   string(p.Status()),
		PhotoURL: p.PhotoURL(),
		IsGuest:  p.IsGuest(),
	}
	if ts := p.WaitingTimestamp(); ts != nil {
		ms := ts.UnixMilli()
		dto.WaitingTimestamp = &ms
	}
	return dto
}

func participantsToDTOs(participants []participant.Participant) []participantDTO {
	out := make([]participantDTO, 0, len(participants))
	for _, p := range participants {
		out = append(out, participantToDTO(p))
	}
	return out
}

func playerToDTO(p participant.Player) playerDTO {
	form := make([]string, 0, len(p.Form))
	for _, f := range p.Form {
		form = append(form, string(f))
	}
	return playerDTO{
		ID:              p.ID,
		Name:            p.Name,
		Points:          p.Points,
		Status:          string(p.Status),
		MatchesPlayed:   p.MatchesPlayed,
		Wins:            p.Wins,
		Draws:           p.Draws,
		Losses:          p.Losses,
		Form:            form,
		PhotoURL:        p.PhotoURL,
		LatePenalties:   p.LateCount,
		NoShowPenalties: p.NoShowCount,
	}
}

func guestToDTO(g participant.Guest) guestDTO {
	return guestDTO{
		ID:      g.ID,
		Name:    g.Name,
		Points:  g.Points,
		Status:  string(g.Status),
		IsGuest: true,
	}
}

func teamSideToDTO(side []match.Snapshot) []matchPlayerDTO {
	out := make([]matchPlayerDTO, 0, len(side))
	for _, snap := range side {
		out = append(out, matchPlayerDTO{
			ID:       snap.ID,
			Name:     snap.Name,
			PhotoURL: snap.PhotoURL,
			IsGuest:  snap.IsGuest,
		})
	}
	return out
}

func teamsToDTO(teams match.Teams) teamsDTO {
	return teamsDTO{
		TeamA: teamSideToDTO(teams.TeamA),
		TeamB: teamSideToDTO(teams.TeamB),
	}
}

func gameStateToDTO(state gameday.State) gameStateDTO {
	penalties := make(map[string]string, len(state.Penalties))
	for playerID, penalty := range state.Penalties {
		penalties[playerID] = string(penalty)
	}
	dto := gameStateDTO{
		Phase:     string(state.Phase),
		ScoreA:    state.ScoreA,
		ScoreB:    state.ScoreB,
		Penalties: penalties,
	}
	if state.Teams != nil {
		teams := teamsToDTO(*state.Teams)
		dto.Teams = &teams
	}
	if len(state.ManualTeams.TeamA) > 0 || len(state.ManualTeams.TeamB) > 0 {
		manual := teamsToDTO(state.ManualTeams)
		dto.ManualTeams = &manual
	}
	if state.Winner != nil {
		winner := string(*state.Winner)
		dto.Winner = &winner
	}
	return dto
}

func matchViewToDTO(view usecase.MatchView) matchDTO {
	penalties := make(map[string]string, len(view.Match.Penalties))
	for playerID, penalty := range view.Match.Penalties {
		penalties[playerID] = string(penalty)
	}
	return matchDTO{
		ID:          view.Match.ID,
		Date:        view.Match.Date.UTC().Format(time.RFC3339),
		Teams:       teamsToDTO(view.Match.Teams),
		Result:      string(view.Match.Result),
		ScoreA:      view.Match.ScoreA,
		ScoreB:      view.Match.ScoreB,
		Penalties:   penalties,
		PointDeltas: view.Deltas,
	}
}

func settingsToDTO(s league.Settings) settingsDTO {
	return settingsDTO{
		LeagueName:    s.LeagueName,
		Location:      s.Location,
		TotalMatches:  s.TotalMatches,
		LatePenalty:   s.LatePenalty,
		NoShowPenalty: s.NoShowPenalty,
		BonusPoint:    s.BonusPoint,
	}
}
