package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhase(t *testing.T) {
	for _, p := range []Phase{PhasePending, PhaseAsking, PhaseGuessing, PhaseResuming} {
		got, err := ParsePhase(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	for _, w := range []AdminWorkflow{WorkflowLabeling, WorkflowTraining, WorkflowRegistering} {
		_, err := ParsePhase(string(w))
		require.ErrorIs(t, err, ErrReservedPhase)
	}

	_, err := ParsePhase("finished")
	require.ErrorIs(t, err, ErrUnknownPhase)
}

func TestFeatureTable(t *testing.T) {
	var empty FeatureTable
	assert.Equal(t, 0.0, empty.Value(1, 1))

	table := FeatureTable{}
	table.Set(1, 2, -1)
	assert.Equal(t, -1.0, table.Value(1, 2))
	assert.Equal(t, 0.0, table.Value(1, 3))
	assert.Equal(t, 0.0, table.Value(9, 2))

	cp := table.Clone()
	cp.Set(1, 2, 1)
	assert.Equal(t, -1.0, table.Value(1, 2))
}

func TestProgress(t *testing.T) {
	p := NewProgress()
	assert.NotEmpty(t, p.ID)
	assert.NotEqual(t, p.ID, NewProgress().ID)

	p.Answers = append(p.Answers, Answer{QuestionID: 4, Value: Affirmative})
	p.Candidates = []SolutionID{1, 2}
	assert.True(t, p.Answered(4))
	assert.False(t, p.Answered(5))

	cp := p.Clone()
	cp.Candidates[0] = 9
	cp.Answers[0].Value = Negative
	assert.Equal(t, SolutionID(1), p.Candidates[0])
	assert.Equal(t, Affirmative, p.Answers[0].Value)

	var nilProgress *Progress
	assert.Nil(t, nilProgress.Clone())
}

func TestPlayerStatusClone(t *testing.T) {
	s := NewPlayerStatus("p")
	assert.Equal(t, PhasePending, s.Phase)

	s.Progress = NewProgress()
	cp := s.Clone()
	cp.Progress.Candidates = append(cp.Progress.Candidates, 1)
	assert.Empty(t, s.Progress.Candidates)
}
