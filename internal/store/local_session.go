package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// =============================================================================
// QUIZ SESSIONS
// =============================================================================

// ErrNotFound is returned when a session id is unknown.
var ErrNotFound = errors.New("session not found")

// timeLayout sorts lexicographically in time order for UTC values.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SessionRecord is one finished (or abandoned) quiz.
type SessionRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time // zero when the quiz was abandoned
	Lower      int
	Upper      int
	Numbers    int
	Operators  []string
	ForbidZero bool
	Seed       uint64
	Questions  int
	Attempts   int
	Correct    int
}

// Rate returns correct answers over attempts.
func (r SessionRecord) Rate() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempts)
}

// Finished reports whether every question was answered.
func (r SessionRecord) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Totals aggregates every stored session.
type Totals struct {
	Sessions int
	Attempts int
	Correct  int
}

// SaveSession inserts or replaces a session record.
func (s *LocalStore) SaveSession(r SessionRecord) error {
	if r.ID == "" {
		return errors.New("session id required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var finished sql.NullString
	if !r.FinishedAt.IsZero() {
		finished = sql.NullString{String: r.FinishedAt.UTC().Format(timeLayout), Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO sessions
		 (id, started_at, finished_at, lower, upper, numbers, operators, questions, attempts, correct, seed, forbid_zero)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt.UTC().Format(timeLayout), finished,
		r.Lower, r.Upper, r.Numbers, strings.Join(r.Operators, " "),
		r.Questions, r.Attempts, r.Correct, int64(r.Seed), r.ForbidZero,
	)
	if err != nil {
		s.logger.Error("failed to save session", zap.String("id", r.ID), zap.Error(err))
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Debug("session saved", zap.String("id", r.ID), zap.Int("attempts", r.Attempts), zap.Int("correct", r.Correct))
	return nil
}

const sessionColumns = `id, started_at, finished_at, lower, upper, numbers, operators, questions, attempts, correct, seed, forbid_zero`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (SessionRecord, error) {
	var (
		r        SessionRecord
		started  string
		finished sql.NullString
		ops      string
		seed     int64
	)
	err := row.Scan(&r.ID, &started, &finished, &r.Lower, &r.Upper, &r.Numbers, &ops,
		&r.Questions, &r.Attempts, &r.Correct, &seed, &r.ForbidZero)
	if err != nil {
		return SessionRecord{}, err
	}

	if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return SessionRecord{}, fmt.Errorf("session %s: bad started_at: %w", r.ID, err)
	}
	if finished.Valid {
		if r.FinishedAt, err = time.Parse(timeLayout, finished.String); err != nil {
			return SessionRecord{}, fmt.Errorf("session %s: bad finished_at: %w", r.ID, err)
		}
	}
	r.Operators = strings.Fields(ops)
	r.Seed = uint64(seed)
	return r, nil
}

// GetSession loads one session by id.
func (s *LocalStore) GetSession(id string) (SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	r, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, err
}

// ListSessions returns the most recent sessions, newest first.
func (s *LocalStore) ListSessions(limit int) ([]SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+` FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		s.logger.Error("failed to list sessions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		r, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Totals sums attempts and correct answers over every stored session.
func (s *LocalStore) Totals() (Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t Totals
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(attempts), 0), COALESCE(SUM(correct), 0) FROM sessions`,
	).Scan(&t.Sessions, &t.Attempts, &t.Correct)
	return t, err
}
