// Package reply describes what the game wants to say back to a player,
// independent of any messaging platform.
package reply

import "github.com/aaronzipp/twenty-questions/internal/models"

// Kind is the type of a reply intent
type Kind string

const (
	KindAskQuestion Kind = "ask_question"
	KindMakeGuess   Kind = "make_guess"
	KindFreeText    Kind = "free_text"
	KindReprompt    Kind = "reprompt"
)

// Intent is one outgoing message.
type Intent struct {
	Kind    Kind
	Text    string
	Prompt  string   // reprompts only: the prompt still awaiting an answer
	Choices []string // labels of the quick-reply buttons, empty for free text

	QuestionID models.QuestionID // set when asking a question of the catalog
	SolutionID models.SolutionID // set when guessing
}

// Ask builds a binary-choice prompt for a catalog question.
func Ask(q models.Question, choices []string) Intent {
	return Intent{Kind: KindAskQuestion, Text: q.Text, Choices: choices, QuestionID: q.ID}
}

// Confirm builds a binary-choice prompt that is not a catalog question.
func Confirm(text string, choices []string) Intent {
	return Intent{Kind: KindAskQuestion, Text: text, Choices: choices}
}

// Guess builds the final-guess prompt.
func Guess(s models.Solution, text string, choices []string) Intent {
	return Intent{Kind: KindMakeGuess, Text: text, Choices: choices, SolutionID: s.ID}
}

// FreeText builds a plain acknowledgement.
func FreeText(text string) Intent {
	return Intent{Kind: KindFreeText, Text: text}
}

// Reprompt answers unrecognized input by repeating the outstanding prompt.
func Reprompt(text, prompt string, choices []string) Intent {
	return Intent{Kind: KindReprompt, Text: text, Prompt: prompt, Choices: choices}
}
