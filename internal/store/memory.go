package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aaronzipp/twenty-questions/internal/models"
)

// MemoryStore keeps the catalog and player statuses in process memory
type MemoryStore struct {
	solutions []models.Solution
	questions []models.Question
	features  models.FeatureTable

	statuses   map[string]*models.PlayerStatus
	progresses map[string]*models.Progress // progressID -> last persisted copy
	mu         sync.RWMutex
}

var _ Repository = (*MemoryStore)(nil)

// NewMemoryStore creates a memory store over a fixed catalog
func NewMemoryStore(solutions []models.Solution, questions []models.Question, features models.FeatureTable) *MemoryStore {
	s := &MemoryStore{
		solutions:  slices.Clone(solutions),
		questions:  slices.Clone(questions),
		features:   features.Clone(),
		statuses:   make(map[string]*models.PlayerStatus),
		progresses: make(map[string]*models.Progress),
	}
	slices.SortFunc(s.solutions, func(a, b models.Solution) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(s.questions, func(a, b models.Question) int { return cmp.Compare(a.ID, b.ID) })
	return s
}

// Solutions returns all solutions
func (s *MemoryStore) Solutions(ctx context.Context) ([]models.Solution, error) {
	return slices.Clone(s.solutions), ctx.Err()
}

// Questions returns all questions
func (s *MemoryStore) Questions(ctx context.Context) ([]models.Question, error) {
	return slices.Clone(s.questions), ctx.Err()
}

// QuestionCount returns the number of questions
func (s *MemoryStore) QuestionCount(ctx context.Context) (int, error) {
	return len(s.questions), ctx.Err()
}

// FeatureValue looks up a single feature
func (s *MemoryStore) FeatureValue(ctx context.Context, q models.QuestionID, sol models.SolutionID) (float64, error) {
	return s.features.Value(q, sol), ctx.Err()
}

// Features returns a copy of the feature table
func (s *MemoryStore) Features(ctx context.Context) (models.FeatureTable, error) {
	return s.features.Clone(), ctx.Err()
}

// PlayerStatus retrieves a player's status, creating it on first contact
func (s *MemoryStore) PlayerStatus(ctx context.Context, playerID string) (*models.PlayerStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	status, exists := s.statuses[playerID]
	if !exists {
		status = models.NewPlayerStatus(playerID)
		s.statuses[playerID] = status
	}
	return status.Clone(), nil
}

// AppendAnswer stages an answer on the given game; Persist stores it
func (s *MemoryStore) AppendAnswer(ctx context.Context, progress *models.Progress, q models.QuestionID, value float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if progress == nil {
		return ErrNoProgress
	}
	if progress.Answered(q) {
		return fmt.Errorf("question %d: %w", q, ErrDuplicateAnswer)
	}
	progress.Answers = append(progress.Answers, models.Answer{QuestionID: q, Value: value})
	return nil
}

// Persist stores a copy of the player's status
func (s *MemoryStore) Persist(ctx context.Context, status *models.PlayerStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.statuses[status.PlayerID]; ok && prev.Progress != nil {
		if status.Progress == nil || status.Progress.ID != prev.Progress.ID {
			delete(s.progresses, prev.Progress.ID)
		}
	}
	if status.Progress != nil {
		s.progresses[status.Progress.ID] = status.Progress.Clone()
	}
	s.statuses[status.PlayerID] = status.Clone()
	return nil
}

// ResetProgress discards the game and sets the player back to pending
func (s *MemoryStore) ResetProgress(ctx context.Context, status *models.PlayerStatus) error {
	status.Progress = nil
	status.Phase = models.PhasePending
	return s.Persist(ctx, status)
}

// ActiveGames returns how many players have a game in progress
func (s *MemoryStore) ActiveGames(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.progresses), nil
}
