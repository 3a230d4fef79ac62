package ui

import (
	"errors"
	"fmt"
	"strings"

	"kidsmath/internal/quiz"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type feedback int

const (
	feedbackNone feedback = iota
	feedbackCorrect
	feedbackWrong
	feedbackInvalid
)

// QuizModel is the bubbletea model for one practice session.
type QuizModel struct {
	session *quiz.Session
	input   textinput.Model
	styles  Styles
	glyphs  bool

	feedback feedback
	message  string
	aborted  bool
}

// NewQuizModel builds the quiz screen. With glyphs set, * and / are shown as × and ÷.
func NewQuizModel(s *quiz.Session, styles Styles, glyphs bool) QuizModel {
	ti := textinput.New()
	ti.Placeholder = "?"
	ti.CharLimit = 12
	ti.Width = 12
	ti.Prompt = ""
	ti.Focus()

	return QuizModel{session: s, input: ti, styles: styles, glyphs: glyphs}
}

// Session returns the underlying session.
func (m QuizModel) Session() *quiz.Session { return m.session }

// Aborted reports whether the user quit before finishing.
func (m QuizModel) Aborted() bool { return m.aborted }

// Init implements tea.Model.
func (m QuizModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m QuizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = !m.session.Done()
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m QuizModel) submit() (tea.Model, tea.Cmd) {
	correct, err := m.session.Answer(m.input.Value())
	switch {
	case errors.Is(err, quiz.ErrEmptyAnswer), errors.Is(err, quiz.ErrNotANumber):
		m.feedback, m.message = feedbackInvalid, err.Error()
		m.input.Reset()
		return m, nil
	case err != nil:
		m.feedback, m.message = feedbackInvalid, err.Error()
		return m, tea.Quit
	}

	m.input.Reset()
	if !correct {
		m.feedback, m.message = feedbackWrong, "Not quite, try again"
		return m, nil
	}
	m.feedback, m.message = feedbackCorrect, "Correct!"
	if m.session.Done() {
		return m, tea.Quit
	}
	return m, nil
}

// display swaps ASCII operators for the school glyphs when enabled.
func (m QuizModel) display(f string) string {
	if !m.glyphs {
		return f
	}
	return strings.NewReplacer(" * ", " × ", " / ", " ÷ ").Replace(f)
}

// View implements tea.Model.
func (m QuizModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Kids Math"))
	b.WriteString("\n")

	if m.session.Done() {
		b.WriteString(m.styles.Card.Render(m.styles.Success.Render("All done! ") + m.session.Summary()))
		b.WriteString("\n")
		return b.String()
	}

	f, i, _ := m.session.Current()
	progress := m.styles.Muted.Render(fmt.Sprintf("Rule %d of %d", i+1, m.session.Len()))
	question := m.styles.Formula.Render(m.display(f)+" = ") + m.input.View()
	b.WriteString(m.styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left, progress, "", question)))
	b.WriteString("\n")

	switch m.feedback {
	case feedbackCorrect:
		b.WriteString(m.styles.Success.Render("✓ " + m.message))
	case feedbackWrong:
		b.WriteString(m.styles.Error.Render("✗ " + m.message))
	case feedbackInvalid:
		b.WriteString(m.styles.Warning.Render(m.message))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("enter: check • esc: stop"))
	b.WriteString("\n")
	return b.String()
}
