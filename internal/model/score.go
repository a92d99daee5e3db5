package model

// Score is the derived point total for one player. GuessPoints and
// TrickPoints are fully recomputed by the scoring engine; BonusPoints is
// facilitator-assigned and survives recomputation. Total is always the sum
// of the three as of the last recomputation.
type Score struct {
	PlayerID    PlayerID
	GuessPoints int
	TrickPoints int
	BonusPoints int
	Total       int
}
