package handlers

import (
	"context"

	"github.com/aaronzipp/twenty-questions/internal/game"
	"github.com/aaronzipp/twenty-questions/internal/models"
	"github.com/aaronzipp/twenty-questions/internal/reply"
)

// handlePending starts a new game on a start token
func (h *Handler) handlePending(ctx context.Context, status *models.PlayerStatus, in game.Input) ([]reply.Intent, error) {
	if in != game.InputStart {
		return []reply.Intent{reply.Reprompt(game.MsgPressStart, "", []string{h.Vocabulary.StartLabel()})}, nil
	}

	snap, err := h.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	candidates := snap.allCandidates()
	next, err := snap.decide(candidates, nil)
	if err != nil {
		return nil, err
	}

	progress := models.NewProgress()
	progress.Candidates = candidates
	status.Progress = progress

	intents, err := h.emit(ctx, status, next)
	if err != nil {
		return nil, err
	}
	h.Metrics.GameStarted()
	return intents, nil
}
