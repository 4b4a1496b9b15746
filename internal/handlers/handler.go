// Package handlers runs the per-player session state machine: one inbound
// token in, a list of reply intents out.
package handlers

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aaronzipp/twenty-questions/internal/game"
	"github.com/aaronzipp/twenty-questions/internal/metrics"
	"github.com/aaronzipp/twenty-questions/internal/models"
	"github.com/aaronzipp/twenty-questions/internal/reply"
	"github.com/aaronzipp/twenty-questions/internal/store"
)

// Handler holds shared game dependencies
type Handler struct {
	Repo       store.Repository
	Vocabulary game.Vocabulary
	Logger     *zap.Logger
	Metrics    *metrics.Game
}

// New builds a Handler. A nil logger logs nothing and nil metrics record nothing.
func New(repo store.Repository, vocab game.Vocabulary, logger *zap.Logger, m *metrics.Game) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Repo: repo, Vocabulary: vocab, Logger: logger, Metrics: m}
}

// HandleMessage advances the player's game by one inbound token. Unrecognized
// tokens are answered with a reprompt; an error means nothing was persisted.
func (h *Handler) HandleMessage(ctx context.Context, playerID, token string) ([]reply.Intent, error) {
	status, err := h.Repo.PlayerStatus(ctx, playerID)
	if err != nil {
		return nil, h.fail(playerID, fmt.Errorf("load status: %w", err))
	}

	in := h.Vocabulary.Classify(token)
	h.Logger.Debug("inbound",
		zap.String("player", playerID),
		zap.String("phase", string(status.Phase)),
		zap.Stringer("input", in),
	)

	var intents []reply.Intent
	switch status.Phase {
	case models.PhasePending:
		intents, err = h.handlePending(ctx, status, in)
	case models.PhaseAsking:
		intents, err = h.handleAsking(ctx, status, in)
	case models.PhaseGuessing:
		intents, err = h.handleGuessing(ctx, status, in)
	case models.PhaseResuming:
		intents, err = h.handleResuming(ctx, status, in)
	default:
		err = fmt.Errorf("%q: %w", status.Phase, models.ErrUnknownPhase)
	}
	if err != nil {
		return nil, h.fail(playerID, err)
	}
	return intents, nil
}

// Reset discards the player's game, used to recover from a failed turn.
// A stored phase that cannot be loaded is overwritten with a fresh status.
func (h *Handler) Reset(ctx context.Context, playerID string) error {
	status, err := h.Repo.PlayerStatus(ctx, playerID)
	if errors.Is(err, models.ErrUnknownPhase) || errors.Is(err, models.ErrReservedPhase) {
		h.Logger.Warn("discarding unreadable status", zap.String("player", playerID), zap.Error(err))
		if err := h.Repo.Persist(ctx, models.NewPlayerStatus(playerID)); err != nil {
			return fmt.Errorf("reset status: %w", err)
		}
		h.Logger.Info("progress reset", zap.String("player", playerID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("load status: %w", err)
	}
	if err := h.Repo.ResetProgress(ctx, status); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	h.Logger.Info("progress reset", zap.String("player", playerID))
	return nil
}
