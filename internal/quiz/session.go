// Package quiz runs a practice session over a generated batch. Answers are
// checked by evaluating the displayed formula, and a question only advances
// once it has been answered correctly.
package quiz

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kidsmath/internal/expr"
	"kidsmath/internal/formula"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrEmptyAnswer is returned when Answer is called with a blank answer.
	ErrEmptyAnswer = errors.New("must answer before click next")
	// ErrNotANumber is returned for answers that are not whole numbers.
	ErrNotANumber = errors.New("answer must be a whole number")
	// ErrFinished is returned when answering a finished session.
	ErrFinished = errors.New("quiz is finished")
	// ErrNoQuestions is returned by New for an empty batch.
	ErrNoQuestions = errors.New("quiz has no questions")
)

// Session is one run through a batch.
type Session struct {
	ID         string
	Formulas   []string
	StartedAt  time.Time
	FinishedAt time.Time

	index    int
	attempts int

	now    func() time.Time
	logger *zap.Logger
}

// Stats is a snapshot of a session's counters.
type Stats struct {
	Questions int
	Attempts  int
	Correct   int
	Rate      float64
}

// New starts a session over the formulas of b.
func New(b *formula.Batch, logger *zap.Logger) (*Session, error) {
	if b == nil || b.Len() == 0 {
		return nil, ErrNoQuestions
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		ID:       uuid.NewString(),
		Formulas: append([]string(nil), b.Formulas...),
		now:      time.Now,
		logger:   logger,
	}
	s.StartedAt = s.now()
	s.logger.Debug("quiz started", zap.String("id", s.ID), zap.Int("questions", len(s.Formulas)))
	return s, nil
}

// Current returns the formula to answer and its zero-based position.
// ok is false once the session is done.
func (s *Session) Current() (f string, index int, ok bool) {
	if s.Done() {
		return "", s.index, false
	}
	return s.Formulas[s.index], s.index, true
}

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.Formulas) }

// Done reports whether every question has been answered correctly.
func (s *Session) Done() bool { return s.index >= len(s.Formulas) }

// Answer checks text against the current formula. Every well-formed answer
// counts as an attempt; the session advances only when it is correct.
func (s *Session) Answer(text string) (bool, error) {
	if s.Done() {
		return false, ErrFinished
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return false, ErrEmptyAnswer
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrNotANumber, text)
	}

	f := s.Formulas[s.index]
	want, err := expr.Evaluate(f)
	if err != nil {
		return false, fmt.Errorf("question %d: %w", s.index+1, err)
	}

	s.attempts++
	correct := expr.EqualsInt(want, n)
	s.logger.Debug("answer",
		zap.Int("question", s.index+1),
		zap.String("formula", f),
		zap.Int("answer", n),
		zap.Bool("correct", correct))

	if correct {
		s.index++
		if s.Done() {
			s.FinishedAt = s.now()
			s.logger.Info("quiz finished", zap.String("id", s.ID), zap.String("summary", s.Summary()))
		}
	}
	return correct, nil
}

// Correct returns the number of correctly answered questions.
func (s *Session) Correct() int { return s.index }

// Attempts returns the number of answers given.
func (s *Session) Attempts() int { return s.attempts }

// Rate returns correct answers over attempts, or 0 before the first attempt.
func (s *Session) Rate() float64 {
	if s.attempts == 0 {
		return 0
	}
	return float64(s.index) / float64(s.attempts)
}

// Stats returns the current counters.
func (s *Session) Stats() Stats {
	return Stats{
		Questions: len(s.Formulas),
		Attempts:  s.attempts,
		Correct:   s.index,
		Rate:      s.Rate(),
	}
}

// Summary formats the counters as "Total attempt: A Correct: C Rate: R%".
func (s *Session) Summary() string {
	return fmt.Sprintf("Total attempt: %d Correct: %d Rate: %.0f%%", s.attempts, s.index, s.Rate()*100)
}
