package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *JournalRepository {
	t.Helper()

	db, err := InitDB(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewJournalRepository(db)
}

func TestRecordAndRecent(t *testing.T) {
	repo := newTestRepo(t)

	firstId, err := repo.Record("page-1", ActionCreate, "Networks exam")
	require.NoError(t, err)
	assert.NotEmpty(t, firstId)

	secondId, err := repo.Record("page-1", ActionUpdate, "Networks exam")
	require.NoError(t, err)
	assert.NotEqual(t, firstId, secondId)

	events, err := repo.Recent(10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, secondId, events[0].Id)
	assert.Equal(t, ActionUpdate, events[0].Action)
	assert.Equal(t, firstId, events[1].Id)
	assert.Equal(t, "page-1", events[1].PageId)
	assert.Equal(t, "Networks exam", events[1].Title)
	assert.False(t, events[1].CreatedAt.IsZero())
}

func TestRecentHonorsLimit(t *testing.T) {
	repo := newTestRepo(t)

	for i := 0; i < 5; i++ {
		_, err := repo.Record("page-2", ActionCreate, "Task")
		require.NoError(t, err)
	}

	events, err := repo.Recent(3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestRecentEmptyJournal(t *testing.T) {
	repo := newTestRepo(t)

	events, err := repo.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestInitDBIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	db, err := InitDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = InitDB(path)
	require.NoError(t, err)
	defer db.Close()
}
