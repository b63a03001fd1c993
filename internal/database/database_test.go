package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artdirector/internal/models"
)

func TestInit_MigratesTables(t *testing.T) {
	db, err := Init(Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	assert.True(t, db.Migrator().HasTable(&models.ChatSession{}))
	assert.True(t, db.Migrator().HasTable(&models.ModelCatalogCache{}))
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "file::memory:", dsn("file::memory:"))
	assert.Equal(t, "a.db?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", dsn("a.db"))
}
