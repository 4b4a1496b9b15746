package game

import (
	"fmt"
	"math"

	"github.com/aaronzipp/twenty-questions/internal/models"
)

// FeatureStore yields the signed relevance of a question to a solution.
// Absent pairs must read as 0.
type FeatureStore interface {
	Value(q models.QuestionID, s models.SolutionID) float64
}

// SelectQuestion picks the unanswered question whose aggregate relevance over
// the candidates is closest to zero, i.e. the one splitting them most evenly.
// Only questions where some candidate has a non-zero feature are considered.
// Ties go to the lowest question ID.
func SelectQuestion(candidates []models.SolutionID, answers []models.Answer, questions []models.Question, features FeatureStore) (models.QuestionID, error) {
	if len(candidates) == 0 {
		return 0, ErrEmptyCandidateSet
	}

	answered := make(map[models.QuestionID]bool, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = true
	}

	var (
		best      models.QuestionID
		bestScore = math.Inf(1)
		found     bool
	)
	for _, q := range questions {
		if answered[q.ID] {
			continue
		}
		relevant := false
		agg := 0.0
		for _, s := range candidates {
			v := features.Value(q.ID, s)
			if v != 0 {
				relevant = true
			}
			agg += v
		}
		if !relevant {
			continue
		}
		score := math.Abs(agg)
		if !found || score < bestScore || (score == bestScore && q.ID < best) {
			best, bestScore, found = q.ID, score, true
		}
	}
	if !found {
		return 0, fmt.Errorf("%d candidates, %d answers: %w", len(candidates), len(answers), ErrNoDiscriminatingQuestion)
	}
	return best, nil
}

// FilterCandidates keeps every candidate whose feature for the answered
// question does not contradict the answer: answer * feature >= 0.
// Candidates without data for the question are always kept.
func FilterCandidates(candidates []models.SolutionID, answer models.Answer, features FeatureStore) ([]models.SolutionID, error) {
	kept := make([]models.SolutionID, 0, len(candidates))
	for _, s := range candidates {
		if answer.Value*features.Value(answer.QuestionID, s) >= 0 {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("after answering question %d: %w", answer.QuestionID, ErrEmptyCandidateSet)
	}
	return kept, nil
}

// CanDecide reports whether to stop asking: one candidate is left, or every
// question in the universe has been answered.
func CanDecide(candidates, answers, questionCount int) bool {
	return candidates == 1 || answers >= questionCount
}

// GuessSolution re-scores every candidate against the whole answer history and
// returns the best one. Ties go to the lowest solution ID.
func GuessSolution(candidates []models.SolutionID, answers []models.Answer, features FeatureStore) (models.SolutionID, error) {
	if len(candidates) == 0 {
		return 0, ErrEmptyCandidateSet
	}
	var (
		best      models.SolutionID
		bestTotal float64
	)
	for i, s := range candidates {
		total := Score(s, answers, features)
		if i == 0 || total > bestTotal || (total == bestTotal && s < best) {
			best, bestTotal = s, total
		}
	}
	return best, nil
}

// Score is the signed dot product of a solution's features with the answers.
func Score(s models.SolutionID, answers []models.Answer, features FeatureStore) float64 {
	total := 0.0
	for _, a := range answers {
		total += a.Value * features.Value(a.QuestionID, s)
	}
	return total
}
