package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/twenty-questions/internal/models"
)

func newTestMemoryStore() *MemoryStore {
	features := models.FeatureTable{}
	features.Set(2, 1, 1)
	features.Set(1, 2, -1)
	return NewMemoryStore(
		[]models.Solution{{ID: 2, Name: "Dog"}, {ID: 1, Name: "Cat"}},
		[]models.Question{{ID: 2, Text: "Barks?"}, {ID: 1, Text: "Meows?"}},
		features,
	)
}

func assertActiveGames(t *testing.T, s *MemoryStore, want int) {
	t.Helper()
	n, err := s.ActiveGames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, n)
}

func TestMemoryStore_CatalogIsOrderedByID(t *testing.T) {
	s := newTestMemoryStore()
	ctx := context.Background()

	solutions, err := s.Solutions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Solution{{ID: 1, Name: "Cat"}, {ID: 2, Name: "Dog"}}, solutions)

	questions, err := s.Questions(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.QuestionID(1), questions[0].ID)

	n, err := s.QuestionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMemoryStore_FeatureValueDefaultsToZero(t *testing.T) {
	s := newTestMemoryStore()
	ctx := context.Background()

	v, err := s.FeatureValue(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = s.FeatureValue(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestMemoryStore_FeaturesSnapshotIsIsolated(t *testing.T) {
	s := newTestMemoryStore()
	ctx := context.Background()

	snap, err := s.Features(ctx)
	require.NoError(t, err)
	snap.Set(2, 1, -5)

	v, err := s.FeatureValue(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestMemoryStore_PlayerStatusCreatedOnFirstContact(t *testing.T) {
	s := newTestMemoryStore()

	status, err := s.PlayerStatus(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", status.PlayerID)
	assert.Equal(t, models.PhasePending, status.Phase)
	assert.Nil(t, status.Progress)
}

func TestMemoryStore_PersistAndReset(t *testing.T) {
	s := newTestMemoryStore()
	ctx := context.Background()

	status, err := s.PlayerStatus(ctx, "bob")
	require.NoError(t, err)
	status.Phase = models.PhaseAsking
	status.Progress = models.NewProgress()
	status.Progress.Candidates = []models.SolutionID{1, 2}
	status.Progress.LatestQuestion = 1
	require.NoError(t, s.Persist(ctx, status))
	require.NoError(t, s.AppendAnswer(ctx, status.Progress, 1, models.Negative))
	require.NoError(t, s.Persist(ctx, status))
	assertActiveGames(t, s, 1)

	// mutations after persist must not leak into the store
	status.Progress.Candidates[0] = 99

	loaded, err := s.PlayerStatus(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.PhaseAsking, loaded.Phase)
	require.NotNil(t, loaded.Progress)
	assert.Equal(t, []models.SolutionID{1, 2}, loaded.Progress.Candidates)
	assert.Equal(t, []models.Answer{{QuestionID: 1, Value: models.Negative}}, loaded.Progress.Answers)

	require.NoError(t, s.ResetProgress(ctx, loaded))
	assertActiveGames(t, s, 0)

	reset, err := s.PlayerStatus(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.PhasePending, reset.Phase)
	assert.Nil(t, reset.Progress)
}

func TestMemoryStore_AppendAnswerRejectsDuplicates(t *testing.T) {
	s := newTestMemoryStore()
	ctx := context.Background()
	progress := models.NewProgress()

	require.NoError(t, s.AppendAnswer(ctx, progress, 1, models.Affirmative))
	err := s.AppendAnswer(ctx, progress, 1, models.Negative)
	require.ErrorIs(t, err, ErrDuplicateAnswer)
	assert.Len(t, progress.Answers, 1)

	require.ErrorIs(t, s.AppendAnswer(ctx, nil, 2, models.Negative), ErrNoProgress)
}

func TestMemoryStore_AnswerIsStoredOnlyByPersist(t *testing.T) {
	s := newTestMemoryStore()
	ctx := context.Background()

	status, err := s.PlayerStatus(ctx, "erin")
	require.NoError(t, err)
	status.Phase = models.PhaseAsking
	status.Progress = models.NewProgress()
	status.Progress.LatestQuestion = 1
	require.NoError(t, s.Persist(ctx, status))

	require.NoError(t, s.AppendAnswer(ctx, status.Progress, 1, models.Affirmative))
	canceled, cancel := context.WithCancel(ctx)
	cancel()
	require.ErrorIs(t, s.Persist(canceled, status), context.Canceled)

	loaded, err := s.PlayerStatus(ctx, "erin")
	require.NoError(t, err)
	require.NotNil(t, loaded.Progress)
	assert.Empty(t, loaded.Progress.Answers)

	// the turn is retried from the stored state
	require.NoError(t, s.AppendAnswer(ctx, loaded.Progress, 1, models.Affirmative))
	require.NoError(t, s.Persist(ctx, loaded))

	loaded, err = s.PlayerStatus(ctx, "erin")
	require.NoError(t, err)
	assert.Equal(t, []models.Answer{{QuestionID: 1, Value: models.Affirmative}}, loaded.Progress.Answers)
	assertActiveGames(t, s, 1)
}

func TestMemoryStore_ConcurrentPlayers(t *testing.T) {
	s := newTestMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			status, err := s.PlayerStatus(ctx, id)
			if !assert.NoError(t, err) {
				return
			}
			status.Phase = models.PhaseAsking
			status.Progress = models.NewProgress()
			assert.NoError(t, s.Persist(ctx, status))
		}(id)
	}
	wg.Wait()
	assertActiveGames(t, s, 4)
}

func TestMemoryStore_HonorsCanceledContext(t *testing.T) {
	s := newTestMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.PlayerStatus(ctx, "x")
	require.ErrorIs(t, err, context.Canceled)
}
