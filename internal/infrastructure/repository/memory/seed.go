package memory

import (
	"fmt"

	"github.com/hirafus/matchday/internal/domain/participant"
)

// SeedRoster returns the starter roster a fresh league begins with. IDs are
// deterministic so restored backups and fresh seeds never collide.
func SeedRoster() []participant.Player {
	seed := []struct {
		name   string
		points int
	}{
		{"Leo Messi", 100},
		{"Cristiano Ronaldo", 98},
		{"Neymar Jr", 95},
		{"Kylian Mbappé", 94},
		{"Kevin De Bruyne", 92},
		{"Robert Lewandowski", 91},
		{"Mohamed Salah", 90},
		{"Sadio Mané", 88},
		{"Virgil van Dijk", 87},
		{"Luka Modrić", 86},
		{"Erling Haaland", 85},
		{"Son Heung-min", 84},
		{"Harry Kane", 83},
		{"Joshua Kimmich", 82},
		{"Alisson Becker", 81},
		{"Karim Benzema", 80},
	}

	players := make([]participant.Player, 0, len(seed))
	for i, s := range seed {
		players = append(players, participant.Player{
			ID:     fmt.Sprintf("p%d", i+1),
			Name:   s.name,
			Points: s.points,
			Status: participant.StatusUndecided,
		})
	}

	return players
}
