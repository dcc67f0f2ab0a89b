package participant

import (
	"fmt"
	"strings"
	"time"
)

// Status is the availability bucket a participant holds before a draft.
type Status string

const (
	StatusIn        Status = "in"
	StatusWaiting   Status = "waiting"
	StatusUndecided Status = "undecided"
	StatusOut       Status = "out"
)

var AllStatuses = map[Status]struct{}{
	StatusIn:        {},
	StatusWaiting:   {},
	StatusUndecided: {},
	StatusOut:       {},
}

func ParseStatus(v string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(v)))
	if _, ok := AllStatuses[status]; !ok {
		return "", fmt.Errorf("invalid availability status: %q", v)
	}
	return status, nil
}

// FormEntry is a single result letter in a player's recent form.
type FormEntry string

const (
	FormWin  FormEntry = "W"
	FormDraw FormEntry = "D"
	FormLoss FormEntry = "L"
)

// FormSize caps the recent-form history, most recent first.
const FormSize = 5

// Player is a registered roster member with cumulative league statistics.
type Player struct {
	ID               string
	Name             string
	Points           int
	Status           Status
	MatchesPlayed    int
	Wins             int
	Draws            int
	Losses           int
	Form             []FormEntry
	LateCount        int
	NoShowCount      int
	PhotoURL         string
	WaitingTimestamp *time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllStatuses[p.Status]; !ok {
		return fmt.Errorf("invalid player status: %s", p.Status)
	}
	if p.MatchesPlayed < 0 || p.Wins < 0 || p.Draws < 0 || p.Losses < 0 {
		return fmt.Errorf("player counters cannot be negative")
	}
	if p.MatchesPlayed != p.Wins+p.Draws+p.Losses {
		return fmt.Errorf("matches played must equal wins+draws+losses: %d != %d+%d+%d",
			p.MatchesPlayed, p.Wins, p.Draws, p.Losses)
	}
	if p.LateCount < 0 || p.NoShowCount < 0 {
		return fmt.Errorf("penalty counters cannot be negative")
	}
	if len(p.Form) > FormSize {
		return fmt.Errorf("form cannot exceed %d entries", FormSize)
	}

	return nil
}

// Guest is an ephemeral matchday participant. It occupies availability and
// draft slots like a Player but never accumulates league statistics.
type Guest struct {
	ID               string
	Name             string
	Points           int
	Status           Status
	WaitingTimestamp *time.Time
}

func (g Guest) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("guest id is required")
	}
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("guest name is required")
	}
	if _, ok := AllStatuses[g.Status]; !ok {
		return fmt.Errorf("invalid guest status: %s", g.Status)
	}

	return nil
}

// Participant is the tagged union over roster players and guests. Exactly one
// of the two fields is set. Consumers must branch explicitly so the
// guest-exclusion rule in scoring cannot be skipped by accident.
type Participant struct {
	Player *Player
	Guest  *Guest
}

func FromPlayer(p Player) Participant {
	return Participant{Player: &p}
}

func FromGuest(g Guest) Participant {
	return Participant{Guest: &g}
}

func (p Participant) IsGuest() bool {
	return p.Guest != nil
}

func (p Participant) ID() string {
	if p.Guest != nil {
		return p.Guest.ID
	}
	if p.Player != nil {
		return p.Player.ID
	}
	return ""
}

func (p Participant) Name() string {
	if p.Guest != nil {
		return p.Guest.Name
	}
	if p.Player != nil {
		return p.Player.Name
	}
	return ""
}

func (p Participant) Points() int {
	if p.Guest != nil {
		return p.Guest.Points
	}
	if p.Player != nil {
		return p.Player.Points
	}
	return 0
}

func (p Participant) Status() Status {
	if p.Guest != nil {
		return p.Guest.Status
	}
	if p.Player != nil {
		return p.Player.Status
	}
	return StatusUndecided
}

func (p Participant) WaitingTimestamp() *time.Time {
	if p.Guest != nil {
		return p.Guest.WaitingTimestamp
	}
	if p.Player != nil {
		return p.Player.WaitingTimestamp
	}
	return nil
}

func (p Participant) PhotoURL() string {
	if p.Player != nil {
		return p.Player.PhotoURL
	}
	return ""
}
