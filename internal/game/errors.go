package game

import "errors"

var (
	// ErrInvalidGuess marks free-text input that is not a non-negative whole number.
	ErrInvalidGuess = errors.New("invalid guess")
	// ErrDataIntegrity marks a lookup the corpus cannot satisfy, which means
	// the request was produced against a different corpus version.
	ErrDataIntegrity = errors.New("data integrity")
)
