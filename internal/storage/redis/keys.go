package redis

import (
	"fmt"

	"github.com/trickery-game/trickery/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "trickery"

// Keys for the ID allocation counters
func nextPlayerIDKey() string {
	return fmt.Sprintf("%s:next_player_id", keyPrefix)
}

func nextStatementIDKey() string {
	return fmt.Sprintf("%s:next_statement_id", keyPrefix)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, id)
}

// playerNameIndexKey returns the Redis key for the name -> player_id index
func playerNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:player_name:%s", keyPrefix, name)
}

// playersIndexKey returns the Redis key for the SET of all player IDs
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// statementKey returns the Redis key for a Statement
func statementKey(id model.StatementID) string {
	return fmt.Sprintf("%s:statement:%d", keyPrefix, id)
}

// statementTextIndexKey returns the Redis key for the text -> statement_id index
func statementTextIndexKey(text string) string {
	return fmt.Sprintf("%s:idx:statement_text:%s", keyPrefix, text)
}

// statementsIndexKey returns the Redis key for the SET of all statement IDs
func statementsIndexKey() string {
	return fmt.Sprintf("%s:idx:statements", keyPrefix)
}

// guessKey returns the Redis key for a Guess
func guessKey(guesserID model.PlayerID, statementID model.StatementID) string {
	return fmt.Sprintf("%s:guess:%d:%d", keyPrefix, guesserID, statementID)
}

// guessesByPlayerIndexKey returns the Redis key for the SET of statement IDs
// a player has guessed on
func guessesByPlayerIndexKey(guesserID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:guesses_by:%d", keyPrefix, guesserID)
}

// guessesForStatementIndexKey returns the Redis key for the SET of player IDs
// that have guessed on a statement
func guessesForStatementIndexKey(statementID model.StatementID) string {
	return fmt.Sprintf("%s:idx:guesses_for:%d", keyPrefix, statementID)
}

// scoreKey returns the Redis key for a Score
func scoreKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:score:%d", keyPrefix, playerID)
}
