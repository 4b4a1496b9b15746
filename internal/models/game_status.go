package models

import (
	"errors"
	"fmt"
)

// Phase is the game-playing state of one player.
type Phase string

const (
	// PhasePending means no game is active.
	PhasePending Phase = "pending"
	// PhaseAsking means a question is outstanding.
	PhaseAsking Phase = "asking"
	// PhaseGuessing means a final guess awaits confirmation.
	PhaseGuessing Phase = "guessing"
	// PhaseResuming means the player declined a guess and is asked whether to go on.
	PhaseResuming Phase = "resuming"
)

// AdminWorkflow names are reserved for catalog maintenance flows. They share
// the status column with Phase but the game never enters them.
type AdminWorkflow string

const (
	WorkflowLabeling    AdminWorkflow = "labeling"
	WorkflowTraining    AdminWorkflow = "training"
	WorkflowRegistering AdminWorkflow = "registering"
)

var (
	ErrUnknownPhase  = errors.New("unknown phase")
	ErrReservedPhase = errors.New("phase reserved for admin workflow")
)

// ParsePhase converts a stored status into a Phase.
func ParsePhase(s string) (Phase, error) {
	switch p := Phase(s); p {
	case PhasePending, PhaseAsking, PhaseGuessing, PhaseResuming:
		return p, nil
	}
	switch AdminWorkflow(s) {
	case WorkflowLabeling, WorkflowTraining, WorkflowRegistering:
		return "", fmt.Errorf("%q: %w", s, ErrReservedPhase)
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownPhase)
}
