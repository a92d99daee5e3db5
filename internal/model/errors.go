package model

import "errors"

// Common errors used across the application
var (
	// Not-found errors
	ErrPlayerNotFound    = errors.New("player not found")
	ErrStatementNotFound = errors.New("statement not found")
	ErrGuessNotFound     = errors.New("guess not found")
	ErrScoreNotFound     = errors.New("score not found")

	// Guess submission validation errors
	ErrGuessCountMismatch = errors.New("guess count does not match statement count")
	ErrInvalidGuessToken  = errors.New("invalid guess token")

	// Seed input errors
	ErrMalformedSeedRow   = errors.New("malformed seed row")
	ErrInvalidAnswerToken = errors.New("invalid answer token")

	// Report errors
	ErrMalformedPlayerName = errors.New("player name cannot be shortened")
)
