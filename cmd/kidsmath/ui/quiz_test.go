package ui

import (
	"testing"

	"kidsmath/internal/formula"
	"kidsmath/internal/quiz"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T, glyphs bool, formulas ...string) QuizModel {
	t.Helper()
	s, err := quiz.New(&formula.Batch{Formulas: formulas, Targets: make([]int, len(formulas))}, nil)
	require.NoError(t, err)
	return NewQuizModel(s, NewStyles(LightTheme()), glyphs)
}

func typeAnswer(m QuizModel, text string) (QuizModel, tea.Cmd) {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(QuizModel), cmd
}

func TestQuizModel_WrongThenRight(t *testing.T) {
	m := newModel(t, false, "3 + 4", "2 * 5")
	assert.Contains(t, m.View(), "3 + 4 =")
	assert.Contains(t, m.View(), "Rule 1 of 2")

	m, cmd := typeAnswer(m, "8")
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "try again")
	assert.Contains(t, m.View(), "3 + 4 =")

	m, cmd = typeAnswer(m, "7")
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Correct!")
	assert.Contains(t, m.View(), "Rule 2 of 2")

	m, cmd = typeAnswer(m, "10")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Session().Done())
	assert.False(t, m.Aborted())
	assert.Contains(t, m.View(), "Total attempt: 3 Correct: 2 Rate: 67%")
}

func TestQuizModel_EmptyAnswer(t *testing.T) {
	m := newModel(t, false, "1 + 1")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(QuizModel)
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), quiz.ErrEmptyAnswer.Error())
	assert.Zero(t, m.Session().Attempts())
}

func TestQuizModel_Escape(t *testing.T) {
	m := newModel(t, false, "1 + 1")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.True(t, next.(QuizModel).Aborted())
}

func TestQuizModel_Glyphs(t *testing.T) {
	m := newModel(t, true, "12 / (2 * 3)")
	assert.Contains(t, m.View(), "12 ÷ (2 × 3) =")

	m, _ = typeAnswer(m, "2")
	assert.True(t, m.Session().Done())
}
