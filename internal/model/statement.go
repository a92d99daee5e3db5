package model

import "time"

// StatementID uniquely identifies a statement. Like player IDs, statement IDs
// are monotonically increasing and never reused. Listing statements by
// ascending ID gives the fixed ordering that guess submission relies on.
type StatementID int64

// Statement is a true/false claim authored by exactly one player.
// Statements are created during seeding and immutable thereafter.
type Statement struct {
	ID        StatementID
	OwnerID   PlayerID
	Text      string // unique across the game
	Answer    bool   // the truth value as authored
	CreatedAt time.Time
}
