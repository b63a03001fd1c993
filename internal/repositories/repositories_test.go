package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"artdirector/internal/database"
	"artdirector/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(database.Config{Path: filepath.Join(t.TempDir(), "repo.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestChatSessionRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewChatSessionRepository(openTestDB(t))

	missing, err := repo.GetByKey(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	session := &models.ChatSession{SessionKey: "abc", Model: "gemini-2.0-flash", SettingsJSON: "{}"}
	require.NoError(t, repo.Create(ctx, session))
	assert.NotZero(t, session.ID)

	session.Model = "gemini-2.5-pro"
	session.MessagesJSON = `[{"role":"user","content":"hi"}]`
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.GetByKey(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "gemini-2.5-pro", got.Model)
	assert.Equal(t, session.MessagesJSON, got.MessagesJSON)

	require.NoError(t, repo.Create(ctx, &models.ChatSession{SessionKey: "def"}))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.DeleteByKey(ctx, "abc"))
	got, err = repo.GetByKey(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestChatSessionRepository_Validation(t *testing.T) {
	ctx := context.Background()
	repo := NewChatSessionRepository(openTestDB(t))

	assert.Error(t, repo.Create(ctx, nil))
	assert.Error(t, repo.Create(ctx, &models.ChatSession{SessionKey: "  "}))
	assert.Error(t, repo.Save(ctx, &models.ChatSession{SessionKey: "unsaved"}))

	require.NoError(t, repo.Create(ctx, &models.ChatSession{SessionKey: "dup"}))
	assert.Error(t, repo.Create(ctx, &models.ChatSession{SessionKey: "dup"}))
}

func TestModelCatalogRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewModelCatalogRepository(openTestDB(t))

	got, err := repo.Get(ctx, "fp1", "gemini")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Upsert(ctx, "fp1", "gemini", []string{"gemini-2.0-flash"}))
	require.NoError(t, repo.Upsert(ctx, "fp1", "gemini", []string{"gemini-1.5-pro", "gemini-2.0-flash"}))
	require.NoError(t, repo.Upsert(ctx, "fp1", "openai", []string{"gpt-4o"}))

	got, err = repo.Get(ctx, "fp1", "gemini")
	require.NoError(t, err)
	assert.Equal(t, []string{"gemini-1.5-pro", "gemini-2.0-flash"}, got)

	got, err = repo.Get(ctx, "fp1", "openai")
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o"}, got)

	assert.Error(t, repo.Upsert(ctx, "", "gemini", nil))
	assert.Error(t, repo.Upsert(ctx, "fp1", "", nil))
}
