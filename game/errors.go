package game

import "errors"

var (
	// ErrInvalidPacked is returned when a raw packed value fails its shape check.
	ErrInvalidPacked = errors.New("invalid packed value")

	ErrTrickFull    = errors.New("trick is full")
	ErrTrickNotFull = errors.New("trick is not full")
	ErrTrickEmpty   = errors.New("trick is empty")
	ErrTurnOver     = errors.New("turn is over")
	ErrTurnNotOver  = errors.New("turn is not over")
)
