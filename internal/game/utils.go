package game

import (
	"strings"

	"github.com/aaronzipp/twenty-questions/internal/models"
)

// Input is the class of an inbound token
type Input int

const (
	InputOther Input = iota
	InputStart
	InputYes
	InputNo
)

func (i Input) String() string {
	switch i {
	case InputStart:
		return "start"
	case InputYes:
		return "yes"
	case InputNo:
		return "no"
	default:
		return "other"
	}
}

// Vocabulary lists the accepted spellings of each token class. The first entry
// of each list is the label offered to the player.
type Vocabulary struct {
	Start []string
	Yes   []string
	No    []string
}

// DefaultVocabulary accepts English tokens and their Japanese equivalents.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Start: []string{"start", "はじめる"},
		Yes:   []string{"yes", "はい"},
		No:    []string{"no", "いいえ"},
	}
}

// Classify maps a raw token to its class. Matching ignores case and
// surrounding whitespace; anything unlisted is InputOther.
func (v Vocabulary) Classify(token string) Input {
	token = strings.TrimSpace(token)
	switch {
	case matches(v.Yes, token):
		return InputYes
	case matches(v.No, token):
		return InputNo
	case matches(v.Start, token):
		return InputStart
	default:
		return InputOther
	}
}

// StartLabel is the label of the start button.
func (v Vocabulary) StartLabel() string { return first(v.Start, "start") }

// BinaryChoices are the labels offered for a yes/no prompt.
func (v Vocabulary) BinaryChoices() []string {
	return []string{first(v.Yes, "yes"), first(v.No, "no")}
}

// AnswerValue converts a yes/no input to the recorded answer value.
func AnswerValue(in Input) float64 {
	if in == InputYes {
		return models.Affirmative
	}
	return models.Negative
}

func matches(words []string, token string) bool {
	for _, w := range words {
		if strings.EqualFold(strings.TrimSpace(w), token) {
			return true
		}
	}
	return false
}

func first(words []string, fallback string) string {
	if len(words) == 0 {
		return fallback
	}
	return words[0]
}
