package quiz

import (
	"strconv"
	"testing"
	"time"

	"kidsmath/internal/formula"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func batch(formulas ...string) *formula.Batch {
	return &formula.Batch{Formulas: formulas, Targets: make([]int, len(formulas))}
}

func TestNew_Empty(t *testing.T) {
	_, err := New(batch(), nil)
	assert.ErrorIs(t, err, ErrNoQuestions)

	_, err = New(nil, nil)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestSession_AdvancesOnlyWhenCorrect(t *testing.T) {
	s, err := New(batch("3 + 4", "9 - (2 + 3)"), zap.NewNop())
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)

	f, i, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "3 + 4", f)
	assert.Equal(t, 0, i)

	correct, err := s.Answer("8")
	require.NoError(t, err)
	assert.False(t, correct)
	_, i, _ = s.Current()
	assert.Equal(t, 0, i, "wrong answer keeps the question")

	correct, err = s.Answer(" 7 ")
	require.NoError(t, err)
	assert.True(t, correct)

	f, i, ok = s.Current()
	require.True(t, ok)
	assert.Equal(t, "9 - (2 + 3)", f)
	assert.Equal(t, 1, i)
	assert.False(t, s.Done())
	assert.True(t, s.FinishedAt.IsZero())

	correct, err = s.Answer("4")
	require.NoError(t, err)
	assert.True(t, correct)
	assert.True(t, s.Done())
	assert.False(t, s.FinishedAt.IsZero())

	_, _, ok = s.Current()
	assert.False(t, ok)

	assert.Equal(t, Stats{Questions: 2, Attempts: 3, Correct: 2, Rate: 2.0 / 3.0}, s.Stats())
	assert.Equal(t, "Total attempt: 3 Correct: 2 Rate: 67%", s.Summary())
}

func TestSession_RejectsBadAnswers(t *testing.T) {
	s, err := New(batch("2 * 3"), nil)
	require.NoError(t, err)

	_, err = s.Answer("   ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
	_, err = s.Answer("six")
	assert.ErrorIs(t, err, ErrNotANumber)
	_, err = s.Answer("6.0")
	assert.ErrorIs(t, err, ErrNotANumber)
	assert.Zero(t, s.Attempts(), "rejected answers are not attempts")

	ok, err := s.Answer("6")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.Answer("6")
	assert.ErrorIs(t, err, ErrFinished)
}

func TestSession_ChecksFormulaNotTarget(t *testing.T) {
	b := &formula.Batch{Formulas: []string{"12 / 4"}, Targets: []int{99}}
	s, err := New(b, nil)
	require.NoError(t, err)

	ok, err := s.Answer("99")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Answer("3")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSession_UnevaluableFormula(t *testing.T) {
	s, err := New(batch("2 + x"), nil)
	require.NoError(t, err)

	_, err = s.Answer("2")
	assert.Error(t, err)
	assert.Zero(t, s.Attempts())
}

func TestSession_RateBeforeAttempts(t *testing.T) {
	s, err := New(batch("1 + 1"), nil)
	require.NoError(t, err)
	assert.Zero(t, s.Rate())
	assert.Equal(t, "Total attempt: 0 Correct: 0 Rate: 0%", s.Summary())
}

func TestSession_Timestamps(t *testing.T) {
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s, err := New(batch("1 + 1"), nil)
	require.NoError(t, err)
	s.now = func() time.Time { return start.Add(90 * time.Second) }

	_, err = s.Answer("2")
	require.NoError(t, err)
	assert.Equal(t, start.Add(90*time.Second), s.FinishedAt)
}

func TestSession_GeneratedBatch(t *testing.T) {
	b, err := formula.Generate(formula.Options{
		Operators: formula.AllOperators, Lower: 1, Upper: 20, Numbers: 3, Tests: 25, Seed: 11,
	})
	require.NoError(t, err)

	s, err := New(b, nil)
	require.NoError(t, err)
	for !s.Done() {
		_, i, _ := s.Current()
		ok, err := s.Answer(strconv.Itoa(b.Targets[i]))
		require.NoError(t, err)
		require.True(t, ok, b.Formulas[i])
	}
	assert.Equal(t, 1.0, s.Rate())
	assert.Equal(t, "Total attempt: 25 Correct: 25 Rate: 100%", s.Summary())
}
