package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrEmptyGroupID          = errors.New("empty group id")
	ErrInvalidReviewDuration = errors.New("invalid review duration")
	ErrInvalidSeed           = errors.New("invalid seed file")
)
