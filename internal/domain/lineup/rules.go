package lineup

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTooManyPlayers      = errors.New("too many players")
	ErrDuplicatePlayer     = errors.New("duplicate player id")
	ErrPositionOutOfBounds = errors.New("player position out of bounds")
	ErrMissingRole         = errors.New("player role is required")
)

// Rules bounds what a saved lineup may contain.
type Rules struct {
	MaxPlayers int
}

func DefaultRules() Rules {
	return Rules{MaxPlayers: 11}
}

func ValidatePlayers(players []PlayerPosition, rules Rules) error {
	if rules.MaxPlayers > 0 && len(players) > rules.MaxPlayers {
		return fmt.Errorf("%w: max=%d got=%d", ErrTooManyPlayers, rules.MaxPlayers, len(players))
	}

	seen := make(map[int]struct{}, len(players))
	for _, p := range players {
		if p.ID <= 0 {
			return fmt.Errorf("player id must be greater than zero: %d", p.ID)
		}
		if _, exists := seen[p.ID]; exists {
			return fmt.Errorf("%w: %d", ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = struct{}{}

		if strings.TrimSpace(p.Role) == "" {
			return fmt.Errorf("%w: player %d", ErrMissingRole, p.ID)
		}
		if p.Top < 0 || p.Top > 100 || p.Left < 0 || p.Left > 100 {
			return fmt.Errorf("%w: player %d at top=%v left=%v", ErrPositionOutOfBounds, p.ID, p.Top, p.Left)
		}
	}
	return nil
}
