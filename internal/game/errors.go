package game

import "errors"

var (
	// ErrNoDiscriminatingQuestion means no unanswered question separates the candidates.
	ErrNoDiscriminatingQuestion = errors.New("no discriminating question left")

	// ErrEmptyCandidateSet means every candidate was eliminated, or none were given.
	ErrEmptyCandidateSet = errors.New("candidate set is empty")
)
