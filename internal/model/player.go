package model

import (
	"fmt"
	"strings"
	"time"
)

// PlayerID uniquely identifies a player. IDs are assigned by the store at
// creation time, monotonically increasing, and never reused.
type PlayerID int64

// Player represents a game participant
type Player struct {
	ID        PlayerID
	Name      string // unique display name, the dedup key for seeding
	CreatedAt time.Time
}

// ShortName returns the label used on scoresheets: the player's first name
// followed by the initial of the next name token, e.g. "Alice B".
// Names with fewer than two whitespace-separated tokens cannot be shortened
// and return ErrMalformedPlayerName.
func (p *Player) ShortName() (string, error) {
	tokens := strings.Fields(p.Name)
	if len(tokens) < 2 {
		return "", fmt.Errorf("%w: %q", ErrMalformedPlayerName, p.Name)
	}
	return fmt.Sprintf("%s %c", tokens[0], []rune(tokens[1])[0]), nil
}
