package gormstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cppla/aiblog/config"
	"github.com/cppla/aiblog/storage"
	"github.com/cppla/aiblog/storage/storagetest"
)

// newTestStore opens a fresh sqlite file per test through the same path the server uses.
func newTestStore(t *testing.T) storage.PostStore {
	t.Helper()
	db, err := config.OpenDatabase(config.AppConfig{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "posts.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s, err := New(db)
	require.NoError(t, err)
	return s
}

func TestStore(t *testing.T) {
	storagetest.Run(t, newTestStore)
}
