package models

import (
	"slices"

	"github.com/google/uuid"
)

const (
	// Affirmative is the recorded value of a "yes".
	Affirmative = 1.0
	// Negative is the recorded value of a "no".
	Negative = -1.0
)

// Answer is one recorded reply, referencing its question by ID.
type Answer struct {
	QuestionID QuestionID
	Value      float64
}

// Progress is the state of one in-flight game (ephemeral)
type Progress struct {
	ID             string
	Answers        []Answer     // in the order they were given
	Candidates     []SolutionID // ascending
	LatestQuestion QuestionID   // question awaiting an answer, 0 when none
	LatestGuess    SolutionID   // solution awaiting confirmation, 0 when none
}

// NewProgress starts an empty game.
func NewProgress() *Progress {
	return &Progress{ID: uuid.NewString()}
}

// Answered reports whether q already has an answer in this game.
func (p *Progress) Answered(q QuestionID) bool {
	for _, a := range p.Answers {
		if a.QuestionID == q {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, nil-safe.
func (p *Progress) Clone() *Progress {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Answers = slices.Clone(p.Answers)
	cp.Candidates = slices.Clone(p.Candidates)
	return &cp
}
