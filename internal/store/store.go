package store

import (
	"context"
	"errors"

	"github.com/aaronzipp/twenty-questions/internal/models"
)

var (
	// ErrNotFound is returned when a catalog row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateAnswer is returned when a question is answered twice in one game.
	ErrDuplicateAnswer = errors.New("question already answered in this game")

	// ErrNoProgress is returned when an answer is appended outside a game.
	ErrNoProgress = errors.New("no game in progress")
)

// Repository is everything the game needs from storage.
type Repository interface {
	// Solutions returns every solution ordered by ID.
	Solutions(ctx context.Context) ([]models.Solution, error)
	// Questions returns every question ordered by ID.
	Questions(ctx context.Context) ([]models.Question, error)
	// QuestionCount is the size of the question universe.
	QuestionCount(ctx context.Context) (int, error)
	// FeatureValue returns the relevance of q to s, 0 when absent.
	FeatureValue(ctx context.Context, q models.QuestionID, s models.SolutionID) (float64, error)
	// Features returns a snapshot of every stored feature.
	Features(ctx context.Context) (models.FeatureTable, error)

	// PlayerStatus returns the player's status, creating a pending one on first contact.
	PlayerStatus(ctx context.Context, playerID string) (*models.PlayerStatus, error)
	// AppendAnswer stages one answer on progress.Answers. Nothing is stored
	// until Persist saves the progress, so a failed turn leaves no trace.
	AppendAnswer(ctx context.Context, progress *models.Progress, q models.QuestionID, value float64) error
	// Persist saves the phase and progress of a player.
	Persist(ctx context.Context, status *models.PlayerStatus) error
	// ResetProgress discards the player's game and returns them to pending.
	ResetProgress(ctx context.Context, status *models.PlayerStatus) error
}
