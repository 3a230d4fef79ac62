package store

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(filepath.Join(t.TempDir(), "nested", "history.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func record(id string, started time.Time) SessionRecord {
	return SessionRecord{
		ID:         id,
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Minute),
		Lower:      1,
		Upper:      10,
		Numbers:    2,
		Operators:  []string{"+", "-"},
		Seed:       1 << 63,
		Questions:  10,
		Attempts:   12,
		Correct:    10,
	}
}

func TestNewLocalStore(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	assert.Equal(t, "history.db", filepath.Base(s.Path()))
	assert.True(t, tableExists(s.db, "sessions"))
	assert.True(t, columnExists(s.db, "sessions", "seed"))
	assert.True(t, columnExists(s.db, "sessions", "forbid_zero"))
	assert.False(t, columnExists(s.db, "sessions", "nope"))
}

func TestSaveAndGetSession(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	start := time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC)
	r := record("a", start)
	r.ForbidZero = true
	require.NoError(t, s.SaveSession(r))

	got, err := s.GetSession("a")
	require.NoError(t, err)
	assert.True(t, start.Equal(got.StartedAt))
	assert.True(t, r.FinishedAt.Equal(got.FinishedAt))
	assert.Equal(t, []string{"+", "-"}, got.Operators)
	assert.Equal(t, uint64(1<<63), got.Seed)
	assert.True(t, got.ForbidZero)
	assert.Equal(t, 12, got.Attempts)
	assert.InDelta(t, 10.0/12.0, got.Rate(), 1e-12)
	assert.True(t, got.Finished())

	_, err = s.GetSession("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveSession_Abandoned(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	r := record("b", time.Now())
	r.FinishedAt = time.Time{}
	r.Correct = 3
	require.NoError(t, s.SaveSession(r))

	got, err := s.GetSession("b")
	require.NoError(t, err)
	assert.False(t, got.Finished())
}

func TestSaveSession_RequiresID(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	assert.Error(t, s.SaveSession(SessionRecord{}))
}

func TestListSessions_NewestFirst(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	// sub-second offsets must still sort correctly
	require.NoError(t, s.SaveSession(record("first", base)))
	require.NoError(t, s.SaveSession(record("third", base.Add(1500*time.Millisecond))))
	require.NoError(t, s.SaveSession(record("second", base.Add(time.Second))))

	list, err := s.ListSessions(0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"third", "second", "first"}, []string{list[0].ID, list[1].ID, list[2].ID})

	list, err = s.ListSessions(1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "third", list[0].ID)
}

func TestTotals(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	empty, err := s.Totals()
	require.NoError(t, err)
	assert.Equal(t, Totals{}, empty)

	require.NoError(t, s.SaveSession(record("a", time.Now())))
	require.NoError(t, s.SaveSession(record("b", time.Now())))

	tot, err := s.Totals()
	require.NoError(t, err)
	assert.Equal(t, Totals{Sessions: 2, Attempts: 24, Correct: 20}, tot)
}

// A fresh database gets every column from the base schema.
func TestNewLocalStore_FreshSchemaNeedsNoMigration(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)

	s, err := NewLocalStore(filepath.Join(t.TempDir(), "fresh.db"), zap.New(core))
	require.NoError(t, err)
	defer s.Close()

	assert.Zero(t, logs.FilterMessage("migration applied").Len())
	done := logs.FilterMessage("schema migrations complete").All()
	require.Len(t, done, 1)
	assert.Equal(t, int64(0), done[0].ContextMap()["applied"])
	assert.Equal(t, int64(len(pendingMigrations)), done[0].ContextMap()["skipped"])
}

// A database created before the seed columns existed is upgraded on open.
func TestMigrations_UpgradeOldSchema(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE sessions (
		id TEXT PRIMARY KEY, started_at TEXT NOT NULL, finished_at TEXT,
		lower INTEGER NOT NULL, upper INTEGER NOT NULL, numbers INTEGER NOT NULL,
		operators TEXT NOT NULL, questions INTEGER NOT NULL,
		attempts INTEGER NOT NULL, correct INTEGER NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sessions VALUES ('old', '2023-01-01T00:00:00.000000000Z', NULL, 1, 10, 2, '+', 5, 5, 5)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	core, logs := observer.New(zapcore.InfoLevel)
	s, err := NewLocalStore(path, zap.New(core))
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, len(pendingMigrations), logs.FilterMessage("migration applied").Len())

	got, err := s.GetSession("old")
	require.NoError(t, err)
	assert.Zero(t, got.Seed)
	assert.False(t, got.ForbidZero)
	assert.Equal(t, []string{"+"}, got.Operators)

	// running again is a no-op
	require.NoError(t, RunMigrations(s.db, zap.NewNop()))
}
