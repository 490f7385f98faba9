package lineup

import (
	"time"

	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

// PlayerPosition is a player placed on the pitch of a saved lineup.
type PlayerPosition = share.PlayerShareEntry

// Lineup is a lineup saved to a user's account.
type Lineup struct {
	ID            string
	UserID        string
	Title         string
	Name          string
	FormationName string
	Players       []PlayerPosition
	Background    string
	PlayerColor   string
	IsPublic      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ShareData converts the saved lineup to its shareable form.
// Background holds the pitch color label; unknown labels keep the raw value.
func (l Lineup) ShareData(pitch share.PitchColor) share.ShareableLineupData {
	return share.ShareableLineupData{
		TeamName:      l.Name,
		FormationName: l.FormationName,
		Players:       share.ClonePlayers(l.Players),
		PlayerColor:   l.PlayerColor,
		PitchColor:    pitch,
	}
}

func (l Lineup) VisibleTo(userID string) bool {
	return l.IsPublic || l.UserID == userID
}
