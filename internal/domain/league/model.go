package league

import "fmt"

// Settings parameterizes the scoring engine and season display.
type Settings struct {
	LeagueName    string
	Location      string
	TotalMatches  int
	LatePenalty   int
	NoShowPenalty int
	BonusPoint    int
}

// DefaultSettings returns the out-of-the-box league configuration.
func DefaultSettings() Settings {
	return Settings{
		LeagueName:    "Hirafus League",
		Location:      "City Arena",
		TotalMatches:  38,
		LatePenalty:   2,
		NoShowPenalty: 3,
		BonusPoint:    1,
	}
}

func (s Settings) Validate() error {
	if s.LeagueName == "" {
		return fmt.Errorf("league name is required")
	}
	if s.TotalMatches <= 0 {
		return fmt.Errorf("total matches must be greater than zero")
	}
	if s.LatePenalty < 0 || s.NoShowPenalty < 0 || s.BonusPoint < 0 {
		return fmt.Errorf("point values cannot be negative")
	}

	return nil
}

// PenaltyDeduction returns the point cost of one penalty assessment.
func (s Settings) PenaltyDeduction(late bool) int {
	if late {
		return s.LatePenalty
	}
	return s.NoShowPenalty
}
