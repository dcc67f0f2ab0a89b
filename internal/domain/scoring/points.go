package scoring

import (
	"github.com/hirafus/matchday/internal/domain/league"
	"github.com/hirafus/matchday/internal/domain/match"
	"github.com/hirafus/matchday/internal/domain/participant"
)

// OutcomeFor translates a match result into the per-player outcome letter for
// the given side.
func OutcomeFor(onTeamA bool, result match.Result) participant.FormEntry {
	switch result {
	case match.ResultDraw:
		return participant.FormDraw
	case match.ResultTeamA:
		if onTeamA {
			return participant.FormWin
		}
		return participant.FormLoss
	default:
		if onTeamA {
			return participant.FormLoss
		}
		return participant.FormWin
	}
}

// ResultPoints is the base award per outcome: win 3, draw 2, loss 0.
func ResultPoints(outcome participant.FormEntry) int {
	switch outcome {
	case participant.FormWin:
		return 3
	case participant.FormDraw:
		return 2
	default:
		return 0
	}
}

// TeamBonuses computes the no-show imbalance bonus per side. Only the team
// with strictly fewer no-shows receives the bonus.
func TeamBonuses(noShowsA, noShowsB, bonusPoint int) (bonusA, bonusB int) {
	if noShowsB > noShowsA {
		return bonusPoint, 0
	}
	if noShowsA > noShowsB {
		return 0, bonusPoint
	}
	return 0, 0
}

// outcomePoints applies the no-show exclusion: a no-show earns nothing for a
// win or draw and never receives the team bonus.
func outcomePoints(outcome participant.FormEntry, wasNoShow bool, bonus int) int {
	points := 0
	if !(wasNoShow && (outcome == participant.FormWin || outcome == participant.FormDraw)) {
		points += ResultPoints(outcome)
	}
	if !wasNoShow {
		points += bonus
	}
	return points
}

// ApplyResult returns the player with one match outcome folded into their
// cumulative statistics.
func ApplyResult(p participant.Player, outcome participant.FormEntry, wasNoShow bool, bonus int) participant.Player {
	p.Points += outcomePoints(outcome, wasNoShow, bonus)
	p.MatchesPlayed++
	switch outcome {
	case participant.FormWin:
		p.Wins++
	case participant.FormDraw:
		p.Draws++
	default:
		p.Losses++
	}

	form := make([]participant.FormEntry, 0, participant.FormSize)
	form = append(form, outcome)
	form = append(form, p.Form...)
	if len(form) > participant.FormSize {
		form = form[:participant.FormSize]
	}
	p.Form = form

	return p
}

// RevertResult undoes ApplyResult for the same inputs, except for form, which
// has to be rebuilt from the ledger (see RebuildForm).
func RevertResult(p participant.Player, outcome participant.FormEntry, wasNoShow bool, bonus int) participant.Player {
	p.Points -= outcomePoints(outcome, wasNoShow, bonus)
	p.MatchesPlayed = maxInt(0, p.MatchesPlayed-1)
	switch outcome {
	case participant.FormWin:
		p.Wins = maxInt(0, p.Wins-1)
	case participant.FormDraw:
		p.Draws = maxInt(0, p.Draws-1)
	default:
		p.Losses = maxInt(0, p.Losses-1)
	}

	return p
}

// ApplyPenalty deducts the configured penalty and bumps the matching counter.
func ApplyPenalty(p participant.Player, penalty match.Penalty, settings league.Settings) participant.Player {
	switch penalty {
	case match.PenaltyLate:
		p.Points -= settings.LatePenalty
		p.LateCount++
	case match.PenaltyNoShow:
		p.Points -= settings.NoShowPenalty
		p.NoShowCount++
	}
	return p
}

// RevertPenalty undoes ApplyPenalty.
func RevertPenalty(p participant.Player, penalty match.Penalty, settings league.Settings) participant.Player {
	switch penalty {
	case match.PenaltyLate:
		p.Points += settings.LatePenalty
		p.LateCount = maxInt(0, p.LateCount-1)
	case match.PenaltyNoShow:
		p.Points += settings.NoShowPenalty
		p.NoShowCount = maxInt(0, p.NoShowCount-1)
	}
	return p
}

// RebuildForm recomputes a player's recent form from the ledger, newest entry
// first. Form entries carry no back-pointer to the match that produced them,
// so after a deletion this full rebuild is the only correct strategy.
func RebuildForm(playerID string, matches []match.Match) []participant.FormEntry {
	form := make([]participant.FormEntry, 0, participant.FormSize)
	for _, m := range matches {
		if len(form) >= participant.FormSize {
			break
		}
		onTeamA, found := m.Side(playerID)
		if !found {
			continue
		}
		form = append(form, OutcomeFor(onTeamA, m.Result))
	}
	return form
}

// PointDelta recomputes the net point change one match produced for one
// participant, mirroring the recording rules exactly. Guests always net zero.
func PointDelta(snap match.Snapshot, onTeamA bool, m match.Match, settings league.Settings) int {
	if snap.IsGuest {
		return 0
	}

	penalty, hasPenalty := m.Penalties[snap.ID]
	wasNoShow := hasPenalty && penalty == match.PenaltyNoShow

	noShowsA, noShowsB := m.NoShowCounts()
	bonusA, bonusB := TeamBonuses(noShowsA, noShowsB, settings.BonusPoint)
	bonus := bonusA
	if !onTeamA {
		bonus = bonusB
	}

	delta := outcomePoints(OutcomeFor(onTeamA, m.Result), wasNoShow, bonus)
	if hasPenalty {
		delta -= settings.PenaltyDeduction(penalty == match.PenaltyLate)
	}

	return delta
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
