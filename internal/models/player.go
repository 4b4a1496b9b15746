package models

// PlayerStatus tracks one player across games (persistent)
type PlayerStatus struct {
	PlayerID string
	Phase    Phase
	Progress *Progress // nil while pending
}

// NewPlayerStatus returns the status of a player seen for the first time.
func NewPlayerStatus(playerID string) *PlayerStatus {
	return &PlayerStatus{PlayerID: playerID, Phase: PhasePending}
}

// Clone returns a deep copy
func (s *PlayerStatus) Clone() *PlayerStatus {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Progress = s.Progress.Clone()
	return &cp
}
