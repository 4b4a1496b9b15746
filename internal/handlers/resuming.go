package handlers

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aaronzipp/twenty-questions/internal/game"
	"github.com/aaronzipp/twenty-questions/internal/models"
	"github.com/aaronzipp/twenty-questions/internal/reply"
	"github.com/aaronzipp/twenty-questions/internal/store"
)

// handleResuming answers the "keep going?" prompt after a wrong guess
func (h *Handler) handleResuming(ctx context.Context, status *models.PlayerStatus, in game.Input) ([]reply.Intent, error) {
	switch in {
	case game.InputYes:
		p := status.Progress
		if p == nil {
			return nil, fmt.Errorf("resuming: %w", store.ErrNoProgress)
		}
		snap, err := h.loadSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		// Everyone is back in play; the answers so far still count.
		candidates := snap.allCandidates()
		next, err := snap.decide(candidates, p.Answers)
		if err != nil {
			return nil, err
		}
		if next.guess != nil {
			// No question is left to ask, so the same guess would come back.
			if err := h.Repo.ResetProgress(ctx, status); err != nil {
				return nil, fmt.Errorf("reset progress: %w", err)
			}
			h.logTransition(status, models.PhaseResuming)
			return []reply.Intent{reply.FreeText(game.MsgGiveUp)}, nil
		}
		p.Candidates = candidates
		return h.emit(ctx, status, next)

	case game.InputNo:
		if err := h.Repo.ResetProgress(ctx, status); err != nil {
			return nil, fmt.Errorf("reset progress: %w", err)
		}
		h.logTransition(status, models.PhaseResuming)
		return []reply.Intent{reply.FreeText(game.MsgGiveUp)}, nil

	default:
		return []reply.Intent{reply.Reprompt(game.MsgPardon, game.MsgContinue, h.Vocabulary.BinaryChoices())}, nil
	}
}

// emit records the outcome of decide on the progress, persists the status and
// returns the matching prompt.
func (h *Handler) emit(ctx context.Context, status *models.PlayerStatus, next step) ([]reply.Intent, error) {
	from := status.Phase
	p := status.Progress
	choices := h.Vocabulary.BinaryChoices()

	var intent reply.Intent
	switch {
	case next.guess != nil:
		p.LatestGuess = next.guess.ID
		status.Phase = models.PhaseGuessing
		intent = reply.Guess(*next.guess, fmt.Sprintf(game.MsgGuessFormat, next.guess.Name), choices)
	case next.question != nil:
		p.LatestQuestion = next.question.ID
		status.Phase = models.PhaseAsking
		intent = reply.Ask(*next.question, choices)
	default:
		return nil, errors.New("empty step")
	}

	if err := h.Repo.Persist(ctx, status); err != nil {
		return nil, fmt.Errorf("persist status: %w", err)
	}
	h.logTransition(status, from)
	return []reply.Intent{intent}, nil
}

func (h *Handler) logTransition(status *models.PlayerStatus, from models.Phase) {
	fields := []zap.Field{
		zap.String("player", status.PlayerID),
		zap.String("from", string(from)),
		zap.String("phase", string(status.Phase)),
	}
	if p := status.Progress; p != nil {
		fields = append(fields,
			zap.Int64("question", int64(p.LatestQuestion)),
			zap.Int("candidates", len(p.Candidates)),
			zap.Int("answers", len(p.Answers)),
		)
	}
	h.Logger.Debug("transition", fields...)
}
