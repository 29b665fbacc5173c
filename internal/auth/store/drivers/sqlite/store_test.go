package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/folio/internal/auth/store"
	"github.com/aussiebroadwan/folio/internal/auth/store/storetest"

	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) store.Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestStoreConformance(t *testing.T) {
	storetest.Run(t, newMemoryStore)
}

func TestStoreFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.db")

	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations(), "second run is a no-op")
	require.NoError(t, s.Ping(t.Context()))
	require.NoError(t, s.Close())

	// Data survives reopening.
	s, err = NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
}

func TestExpandDSN(t *testing.T) {
	require.Equal(t, "file::memory:?_pragma=foreign_keys(1)", expandDSN(":memory:"))
	require.Equal(t, "file:x.db?mode=ro", expandDSN("file:x.db?mode=ro"))
	require.Contains(t, expandDSN("auth.db"), "journal_mode(WAL)")
	require.Contains(t, expandDSN("auth.db"), "foreign_keys(1)")
}

func TestTxNesting(t *testing.T) {
	s := newMemoryStore(t)

	tx, err := s.Tx(t.Context())
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Tx(t.Context())
	require.Error(t, err)
	require.NoError(t, tx.Ping(t.Context()))
}
