package model

// Guess is one player's belief about one statement. At most one guess exists
// per (guesser, statement) pair; resubmitting replaces a player's entire
// guess set.
type Guess struct {
	GuesserID   PlayerID
	StatementID StatementID
	Value       bool
}
