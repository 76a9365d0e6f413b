package repository

import (
	"testing"

	"github.com/SundayYogurt/inventory_service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetRepositoryRoundTrip(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	repo := NewAssetRepository(db)

	// Fresh database: empty collection, not an error.
	assets, err := repo.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, assets)

	in := []domain.Asset{
		{
			ID: "a1", Code: "2024-EDC-CC-0001", Name: "Ordinateur",
			Category: "CC", Location: "EDC",
			CustomAttributes: domain.CustomAttributes{"f1": "SN-1"},
		},
		{ID: "a2", Code: "2024-EDC-CC-0002", Name: "Écran", IsArchived: true},
	}
	require.NoError(t, repo.ReplaceAll(in))

	out, err := repo.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// ReplaceAll overwrites the whole snapshot, it never merges.
	require.NoError(t, repo.ReplaceAll(in[:1]))
	out, err = repo.LoadAll()
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestConfigRepositoryFoundFlag(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	repo := NewConfigRepository(db)

	_, found, err := repo.Load()
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Save(domain.DefaultConfig()))

	cfg, found, err := repo.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Electricity Development Corporation", cfg.CompanyName)
	assert.True(t, cfg.HasCategory("AA"))
}

func TestLogRepositoryAppendKeepsOrder(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	repo := NewLogRepository(db)

	require.NoError(t, repo.Append(domain.Log{ID: "l1", Action: domain.ActionCreate}))
	require.NoError(t, repo.Append(domain.Log{ID: "l2", Action: domain.ActionUpdate}))
	require.NoError(t, repo.Append(domain.Log{ID: "l3", Action: domain.ActionDelete}))

	logs, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "l1", logs[0].ID)
	assert.Equal(t, "l3", logs[2].ID)
}

func TestUserRepositoryRoundTrip(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	repo := NewUserRepository(db)

	admin := domain.DefaultAdmin("admin@edc.cm", "admin12345")
	require.NoError(t, repo.ReplaceAll([]domain.User{admin}))

	users, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, admin, users[0])
}
