package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/lineup"
	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/user"
	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

func TestLineupRepository_CRUD(t *testing.T) {
	ctx := t.Context()
	repo := NewLineupRepository()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	older := lineup.Lineup{ID: "l1", UserID: "u1", Title: "Old", CreatedAt: base,
		Players: []lineup.PlayerPosition{{ID: 1, Role: "GK", Number: share.IntPtr(1)}}}
	newer := lineup.Lineup{ID: "l2", UserID: "u1", Title: "New", CreatedAt: base.Add(time.Hour)}
	other := lineup.Lineup{ID: "l3", UserID: "u2", CreatedAt: base}

	for _, item := range []lineup.Lineup{older, newer, other} {
		_, err := repo.Create(ctx, item)
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, older)
	require.Error(t, err)

	items, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "l2", items[0].ID)

	got, ok, err := repo.GetByID(ctx, "l1")
	require.NoError(t, err)
	require.True(t, ok)
	*got.Players[0].Number = 99
	again, _, _ := repo.GetByID(ctx, "l1")
	require.Equal(t, 1, *again.Players[0].Number)

	deleted, err := repo.Delete(ctx, "l1")
	require.NoError(t, err)
	require.True(t, deleted)
	deleted, err = repo.Delete(ctx, "l1")
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestLineupRepository_DeleteByUser(t *testing.T) {
	ctx := t.Context()
	repo := NewLineupRepository()
	for _, item := range []lineup.Lineup{
		{ID: "l1", UserID: "u1"},
		{ID: "l2", UserID: "u1"},
		{ID: "l3", UserID: "u2"},
	} {
		_, err := repo.Create(ctx, item)
		require.NoError(t, err)
	}

	removed, err := repo.DeleteByUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 2, removed)

	items, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, items)
	_, ok, err := repo.GetByID(ctx, "l3")
	require.NoError(t, err)
	require.True(t, ok)

	removed, err = repo.DeleteByUser(ctx, "u1")
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestUserRepository_UpsertKeepsExisting(t *testing.T) {
	ctx := t.Context()
	repo := NewUserRepository(SeedUsers())

	got, err := repo.UpsertByExternalID(ctx, user.User{ID: "new", ExternalID: DemoUserExternalID, Email: "x@y"})
	require.NoError(t, err)
	require.Equal(t, DemoUserID, got.ID)

	created, err := repo.UpsertByExternalID(ctx, user.User{ID: "u2", ExternalID: "ext-2", Email: "b@c"})
	require.NoError(t, err)
	require.Equal(t, "u2", created.ID)

	deleted, err := repo.DeleteByExternalID(ctx, "ext-2")
	require.NoError(t, err)
	require.True(t, deleted)

	_, ok, err := repo.GetByExternalID(ctx, "ext-2")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSeedLineups(t *testing.T) {
	repo := NewSeededLineupRepository(SeedLineups())
	item, ok, err := repo.GetByID(t.Context(), DemoLineupID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, item.Players, 11)
	require.True(t, item.IsPublic)
}
