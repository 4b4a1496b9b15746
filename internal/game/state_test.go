package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/twenty-questions/internal/models"
)

// scenarioFeatures is the four-solution, three-question table:
// S1={Q1:1,Q2:0,Q3:1} S2={Q1:1,Q2:1,Q3:0} S3={Q1:0,Q2:1,Q3:0} S4={Q1:1,Q2:0,Q3:0}
func scenarioFeatures() models.FeatureTable {
	t := models.FeatureTable{}
	t.Set(1, 1, 1)
	t.Set(3, 1, 1)
	t.Set(1, 2, 1)
	t.Set(2, 2, 1)
	t.Set(2, 3, 1)
	t.Set(1, 4, 1)
	return t
}

func scenarioQuestions() []models.Question {
	return []models.Question{
		{ID: 1, Text: "Q1"},
		{ID: 2, Text: "Q2"},
		{ID: 3, Text: "Q3"},
	}
}

func TestScenario_FullGame(t *testing.T) {
	features := scenarioFeatures()
	questions := scenarioQuestions()
	candidates := []models.SolutionID{1, 2, 3, 4}
	var answers []models.Answer

	// Q1=3, Q2=2, Q3=1
	q, err := SelectQuestion(candidates, answers, questions, features)
	require.NoError(t, err)
	assert.Equal(t, models.QuestionID(3), q)

	answers = append(answers, models.Answer{QuestionID: 3, Value: models.Affirmative})
	candidates, err = FilterCandidates(candidates, answers[len(answers)-1], features)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]models.SolutionID{1, 2, 3, 4}, candidates))
	assert.False(t, CanDecide(len(candidates), len(answers), len(questions)))

	q, err = SelectQuestion(candidates, answers, questions, features)
	require.NoError(t, err)
	assert.Equal(t, models.QuestionID(2), q)

	answers = append(answers, models.Answer{QuestionID: 2, Value: models.Negative})
	candidates, err = FilterCandidates(candidates, answers[len(answers)-1], features)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]models.SolutionID{1, 4}, candidates))
	assert.False(t, CanDecide(len(candidates), len(answers), len(questions)))

	q, err = SelectQuestion(candidates, answers, questions, features)
	require.NoError(t, err)
	assert.Equal(t, models.QuestionID(1), q)

	answers = append(answers, models.Answer{QuestionID: 1, Value: models.Affirmative})
	candidates, err = FilterCandidates(candidates, answers[len(answers)-1], features)
	require.NoError(t, err)
	assert.True(t, CanDecide(len(candidates), len(answers), len(questions)))

	assert.Equal(t, 2.0, Score(1, answers, features))
	assert.Equal(t, 1.0, Score(4, answers, features))

	guess, err := GuessSolution(candidates, answers, features)
	require.NoError(t, err)
	assert.Equal(t, models.SolutionID(1), guess)
}

func TestSelectQuestion_TieGoesToLowestID(t *testing.T) {
	features := models.FeatureTable{}
	features.Set(7, 1, 1)
	features.Set(7, 2, -1)
	features.Set(4, 1, -1)
	features.Set(4, 2, 1)
	questions := []models.Question{{ID: 7}, {ID: 4}}

	q, err := SelectQuestion([]models.SolutionID{1, 2}, nil, questions, features)
	require.NoError(t, err)
	assert.Equal(t, models.QuestionID(4), q)
}

func TestSelectQuestion_SkipsAnsweredQuestions(t *testing.T) {
	features := scenarioFeatures()
	answers := []models.Answer{{QuestionID: 3, Value: models.Affirmative}}

	q, err := SelectQuestion([]models.SolutionID{1, 2, 3, 4}, answers, scenarioQuestions(), features)
	require.NoError(t, err)
	assert.NotEqual(t, models.QuestionID(3), q)
}

func TestSelectQuestion_IgnoresQuestionsWithoutCandidateData(t *testing.T) {
	features := models.FeatureTable{}
	features.Set(1, 9, 1) // only a non-candidate has data
	features.Set(2, 1, 1)
	features.Set(2, 2, 1)

	q, err := SelectQuestion([]models.SolutionID{1, 2}, nil, []models.Question{{ID: 1}, {ID: 2}}, features)
	require.NoError(t, err)
	assert.Equal(t, models.QuestionID(2), q)
}

func TestSelectQuestion_NoDiscriminatingQuestion(t *testing.T) {
	features := models.FeatureTable{}
	features.Set(1, 3, 1)

	_, err := SelectQuestion([]models.SolutionID{1, 2}, nil, []models.Question{{ID: 1}}, features)
	require.ErrorIs(t, err, ErrNoDiscriminatingQuestion)
}

func TestSelectQuestion_EmptyCandidates(t *testing.T) {
	_, err := SelectQuestion(nil, nil, scenarioQuestions(), scenarioFeatures())
	require.ErrorIs(t, err, ErrEmptyCandidateSet)
}

func TestFilterCandidates(t *testing.T) {
	features := models.FeatureTable{}
	features.Set(1, 1, 1)
	features.Set(1, 2, -1)
	features.Set(1, 3, 0.25)
	all := []models.SolutionID{1, 2, 3, 4}

	tests := []struct {
		name   string
		answer models.Answer
		want   []models.SolutionID
	}{
		{"yes keeps non-negative", models.Answer{QuestionID: 1, Value: models.Affirmative}, []models.SolutionID{1, 3, 4}},
		{"no keeps non-positive", models.Answer{QuestionID: 1, Value: models.Negative}, []models.SolutionID{2, 4}},
		{"unknown question keeps all", models.Answer{QuestionID: 5, Value: models.Negative}, all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterCandidates(all, tt.answer, features)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FilterCandidates() mismatch (-want +got):\n%s", diff)
			}
			assert.LessOrEqual(t, len(got), len(all))
		})
	}
}

func TestFilterCandidates_EliminatesEveryone(t *testing.T) {
	features := models.FeatureTable{}
	features.Set(1, 1, 1)
	features.Set(1, 2, 1)

	_, err := FilterCandidates([]models.SolutionID{1, 2}, models.Answer{QuestionID: 1, Value: models.Negative}, features)
	require.ErrorIs(t, err, ErrEmptyCandidateSet)
}

func TestCanDecide(t *testing.T) {
	assert.True(t, CanDecide(1, 0, 5))
	assert.True(t, CanDecide(3, 5, 5))
	assert.True(t, CanDecide(0, 5, 5))
	assert.False(t, CanDecide(2, 4, 5))
	assert.False(t, CanDecide(0, 1, 5))
}

func TestGuessSolution_TieGoesToLowestID(t *testing.T) {
	features := models.FeatureTable{}
	features.Set(1, 5, 1)
	features.Set(1, 2, 1)
	answers := []models.Answer{{QuestionID: 1, Value: models.Affirmative}}

	guess, err := GuessSolution([]models.SolutionID{5, 2, 8}, answers, features)
	require.NoError(t, err)
	assert.Equal(t, models.SolutionID(2), guess)
}

func TestGuessSolution_UsesWholeHistory(t *testing.T) {
	features := models.FeatureTable{}
	features.Set(1, 1, 1)
	features.Set(2, 2, 1)
	features.Set(3, 2, 1)
	answers := []models.Answer{
		{QuestionID: 1, Value: models.Affirmative},
		{QuestionID: 2, Value: models.Affirmative},
		{QuestionID: 3, Value: models.Affirmative},
	}

	guess, err := GuessSolution([]models.SolutionID{1, 2}, answers, features)
	require.NoError(t, err)
	assert.Equal(t, models.SolutionID(2), guess)
}

func TestGuessSolution_NegativeScoresStillPickMember(t *testing.T) {
	features := models.FeatureTable{}
	features.Set(1, 3, 1)
	features.Set(1, 4, 2)
	answers := []models.Answer{{QuestionID: 1, Value: models.Negative}}

	guess, err := GuessSolution([]models.SolutionID{4, 3}, answers, features)
	require.NoError(t, err)
	assert.Equal(t, models.SolutionID(3), guess)
}

func TestGuessSolution_EmptyCandidates(t *testing.T) {
	_, err := GuessSolution(nil, nil, scenarioFeatures())
	require.ErrorIs(t, err, ErrEmptyCandidateSet)
}

func TestDeterminism_SameInputsSameQuestionOrder(t *testing.T) {
	run := func() ([]models.QuestionID, models.SolutionID) {
		features := scenarioFeatures()
		questions := scenarioQuestions()
		candidates := []models.SolutionID{1, 2, 3, 4}
		replies := []float64{models.Affirmative, models.Negative, models.Affirmative}
		var (
			asked   []models.QuestionID
			answers []models.Answer
		)
		for _, v := range replies {
			q, err := SelectQuestion(candidates, answers, questions, features)
			require.NoError(t, err)
			asked = append(asked, q)
			answers = append(answers, models.Answer{QuestionID: q, Value: v})
			candidates, err = FilterCandidates(candidates, answers[len(answers)-1], features)
			require.NoError(t, err)
		}
		guess, err := GuessSolution(candidates, answers, features)
		require.NoError(t, err)
		return asked, guess
	}

	firstAsked, firstGuess := run()
	for range 5 {
		asked, guess := run()
		if diff := cmp.Diff(firstAsked, asked); diff != "" {
			t.Fatalf("question order changed (-first +now):\n%s", diff)
		}
		assert.Equal(t, firstGuess, guess)
	}
}

func TestVocabulary_Classify(t *testing.T) {
	v := DefaultVocabulary()

	tests := []struct {
		token string
		want  Input
	}{
		{"yes", InputYes},
		{"  YES ", InputYes},
		{"はい", InputYes},
		{"no", InputNo},
		{"いいえ", InputNo},
		{"Start", InputStart},
		{"はじめる", InputStart},
		{"maybe", InputOther},
		{"", InputOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, v.Classify(tt.token), "token %q", tt.token)
	}
	assert.Equal(t, []string{"yes", "no"}, v.BinaryChoices())
	assert.Equal(t, "start", v.StartLabel())
}

func TestAnswerValue(t *testing.T) {
	assert.Equal(t, models.Affirmative, AnswerValue(InputYes))
	assert.Equal(t, models.Negative, AnswerValue(InputNo))
}
