package handlers

import (
	"context"
	"fmt"
	"slices"

	"github.com/aaronzipp/twenty-questions/internal/game"
	"github.com/aaronzipp/twenty-questions/internal/models"
	"github.com/aaronzipp/twenty-questions/internal/reply"
	"github.com/aaronzipp/twenty-questions/internal/store"
)

// handleAsking records the answer to the outstanding question and moves on
func (h *Handler) handleAsking(ctx context.Context, status *models.PlayerStatus, in game.Input) ([]reply.Intent, error) {
	p := status.Progress
	if p == nil {
		return nil, fmt.Errorf("asking: %w", store.ErrNoProgress)
	}
	snap, err := h.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if in != game.InputYes && in != game.InputNo {
		q, err := snap.question(p.LatestQuestion)
		if err != nil {
			return nil, err
		}
		return []reply.Intent{reply.Reprompt(game.MsgPardon, q.Text, h.Vocabulary.BinaryChoices())}, nil
	}

	answer := models.Answer{QuestionID: p.LatestQuestion, Value: game.AnswerValue(in)}

	// Score first; nothing is written unless the whole step succeeds.
	candidates, err := game.FilterCandidates(p.Candidates, answer, snap.features)
	if err != nil {
		return nil, err
	}
	answers := append(slices.Clone(p.Answers), answer)
	next, err := snap.decide(candidates, answers)
	if err != nil {
		return nil, err
	}

	if err := h.Repo.AppendAnswer(ctx, p, answer.QuestionID, answer.Value); err != nil {
		return nil, fmt.Errorf("append answer: %w", err)
	}
	p.Candidates = candidates
	h.Metrics.Answered(in.String())
	return h.emit(ctx, status, next)
}
