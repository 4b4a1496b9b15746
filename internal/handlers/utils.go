package handlers

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aaronzipp/twenty-questions/internal/game"
	"github.com/aaronzipp/twenty-questions/internal/models"
	"github.com/aaronzipp/twenty-questions/internal/store"
)

// snapshot is the catalog as seen by one turn
type snapshot struct {
	solutions     []models.Solution
	questions     []models.Question
	features      models.FeatureTable
	questionCount int
}

func (h *Handler) loadSnapshot(ctx context.Context) (*snapshot, error) {
	solutions, err := h.Repo.Solutions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load solutions: %w", err)
	}
	questions, err := h.Repo.Questions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	count, err := h.Repo.QuestionCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	features, err := h.Repo.Features(ctx)
	if err != nil {
		return nil, fmt.Errorf("load features: %w", err)
	}
	return &snapshot{solutions: solutions, questions: questions, features: features, questionCount: count}, nil
}

// allCandidates returns every solution ID, ascending
func (sn *snapshot) allCandidates() []models.SolutionID {
	ids := make([]models.SolutionID, 0, len(sn.solutions))
	for _, s := range sn.solutions {
		ids = append(ids, s.ID)
	}
	return ids
}

func (sn *snapshot) question(id models.QuestionID) (models.Question, error) {
	for _, q := range sn.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return models.Question{}, fmt.Errorf("question %d: %w", id, store.ErrNotFound)
}

func (sn *snapshot) solution(id models.SolutionID) (models.Solution, error) {
	for _, s := range sn.solutions {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Solution{}, fmt.Errorf("solution %d: %w", id, store.ErrNotFound)
}

// step is the result of the pure scoring part of a turn: either a guess or a question
type step struct {
	guess    *models.Solution
	question *models.Question
}

// decide applies the stopping policy and scores the next move. It touches no storage.
func (sn *snapshot) decide(candidates []models.SolutionID, answers []models.Answer) (step, error) {
	if game.CanDecide(len(candidates), len(answers), sn.questionCount) {
		id, err := game.GuessSolution(candidates, answers, sn.features)
		if err != nil {
			return step{}, err
		}
		s, err := sn.solution(id)
		if err != nil {
			return step{}, err
		}
		return step{guess: &s}, nil
	}

	id, err := game.SelectQuestion(candidates, answers, sn.questions, sn.features)
	if err != nil {
		return step{}, err
	}
	q, err := sn.question(id)
	if err != nil {
		return step{}, err
	}
	return step{question: &q}, nil
}

// fail logs and counts a failed turn
func (h *Handler) fail(playerID string, err error) error {
	kind := "storage"
	switch {
	case errors.Is(err, game.ErrNoDiscriminatingQuestion):
		kind = "no_question"
	case errors.Is(err, game.ErrEmptyCandidateSet):
		kind = "no_candidates"
	case errors.Is(err, store.ErrNoProgress), errors.Is(err, models.ErrUnknownPhase), errors.Is(err, models.ErrReservedPhase):
		kind = "corrupt_state"
	}
	h.Metrics.TurnFailed(kind)
	h.Logger.Warn("turn failed",
		zap.String("player", playerID),
		zap.String("kind", kind),
		zap.Error(err),
	)
	return err
}
