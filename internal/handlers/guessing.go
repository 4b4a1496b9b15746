package handlers

import (
	"context"
	"fmt"

	"github.com/aaronzipp/twenty-questions/internal/game"
	"github.com/aaronzipp/twenty-questions/internal/metrics"
	"github.com/aaronzipp/twenty-questions/internal/models"
	"github.com/aaronzipp/twenty-questions/internal/reply"
	"github.com/aaronzipp/twenty-questions/internal/store"
)

// handleGuessing settles the outstanding guess
func (h *Handler) handleGuessing(ctx context.Context, status *models.PlayerStatus, in game.Input) ([]reply.Intent, error) {
	p := status.Progress
	if p == nil {
		return nil, fmt.Errorf("guessing: %w", store.ErrNoProgress)
	}
	choices := h.Vocabulary.BinaryChoices()

	switch in {
	case game.InputYes:
		asked := len(p.Answers)
		if err := h.Repo.ResetProgress(ctx, status); err != nil {
			return nil, fmt.Errorf("reset progress: %w", err)
		}
		h.Metrics.Guessed(metrics.OutcomeCorrect, asked)
		h.logTransition(status, models.PhaseGuessing)
		return []reply.Intent{reply.FreeText(game.MsgSuccess)}, nil

	case game.InputNo:
		status.Phase = models.PhaseResuming
		if err := h.Repo.Persist(ctx, status); err != nil {
			return nil, fmt.Errorf("persist status: %w", err)
		}
		h.Metrics.Guessed(metrics.OutcomeWrong, len(p.Answers))
		h.logTransition(status, models.PhaseGuessing)
		return []reply.Intent{
			reply.FreeText(game.MsgCommiserate),
			reply.Confirm(game.MsgContinue, choices),
		}, nil

	default:
		snap, err := h.loadSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		s, err := snap.solution(p.LatestGuess)
		if err != nil {
			return nil, err
		}
		return []reply.Intent{reply.Reprompt(game.MsgPardon, fmt.Sprintf(game.MsgGuessFormat, s.Name), choices)}, nil
	}
}
