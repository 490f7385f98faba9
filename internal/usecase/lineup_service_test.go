package usecase

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/formation"
	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/user"
	"github.com/Pranay-Prat/football-lineup-maker/internal/infrastructure/repository/memory"
	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/logging"
	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

type sequenceIDs struct {
	n atomic.Int64
}

func (g *sequenceIDs) NewID() (string, error) {
	return fmt.Sprintf("id-%d", g.n.Add(1)), nil
}

func newLineupServiceFixture(t *testing.T) (*LineupService, *memory.UserRepository) {
	t.Helper()

	users := memory.NewUserRepository([]user.User{
		{ID: "u-1", ExternalID: "ext-1", Email: "one@example.com"},
		{ID: "u-2", ExternalID: "ext-2", Email: "two@example.com"},
	})
	service := NewLineupService(memory.NewLineupRepository(), users, &sequenceIDs{}, 2, logging.NewNop())
	return service, users
}

func validSaveInput() SaveLineupInput {
	return SaveLineupInput{
		Title:         "Derby Day",
		Name:          "Rovers",
		FormationName: "4-3-3",
		Players:       formation.Default().Players(),
		Background:    "Classic Green",
	}
}

func TestLineupService_SaveAndGet(t *testing.T) {
	t.Parallel()

	service, _ := newLineupServiceFixture(t)
	fixed := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	saved, err := service.Save(t.Context(), "ext-1", validSaveInput())
	require.NoError(t, err)
	require.Equal(t, "id-1", saved.ID)
	require.Equal(t, "u-1", saved.UserID)
	require.Equal(t, "#ef4444", saved.PlayerColor)
	require.False(t, saved.IsPublic)
	require.Equal(t, fixed, saved.CreatedAt)

	got, err := service.Get(t.Context(), "ext-1", saved.ID)
	require.NoError(t, err)
	require.Equal(t, saved, got)

	_, err = service.Get(t.Context(), "ext-2", saved.ID)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestLineupService_SaveValidation(t *testing.T) {
	t.Parallel()

	service, _ := newLineupServiceFixture(t)
	tests := []struct {
		name   string
		mutate func(*SaveLineupInput)
		user   string
		want   error
	}{
		{name: "missing title", mutate: func(in *SaveLineupInput) { in.Title = " " }, user: "ext-1", want: ErrInvalidInput},
		{name: "missing name", mutate: func(in *SaveLineupInput) { in.Name = "" }, user: "ext-1", want: ErrInvalidInput},
		{name: "missing players", mutate: func(in *SaveLineupInput) { in.Players = nil }, user: "ext-1", want: ErrInvalidInput},
		{name: "missing background", mutate: func(in *SaveLineupInput) { in.Background = "" }, user: "ext-1", want: ErrInvalidInput},
		{name: "bad coordinates", mutate: func(in *SaveLineupInput) { in.Players[0].Top = -1 }, user: "ext-1", want: ErrInvalidInput},
		{name: "unknown user", mutate: func(*SaveLineupInput) {}, user: "ext-404", want: ErrNotFound},
		{name: "anonymous", mutate: func(*SaveLineupInput) {}, user: "", want: ErrUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validSaveInput()
			tc.mutate(&input)
			_, err := service.Save(t.Context(), tc.user, input)
			require.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestLineupService_ListMine(t *testing.T) {
	t.Parallel()

	service, _ := newLineupServiceFixture(t)
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	var tick atomic.Int64
	service.now = func() time.Time { return base.Add(time.Duration(tick.Add(1)) * time.Minute) }

	for i := 0; i < 5; i++ {
		input := validSaveInput()
		input.Title = fmt.Sprintf("Lineup %d", i)
		_, err := service.Save(t.Context(), "ext-1", input)
		require.NoError(t, err)
	}
	_, err := service.Save(t.Context(), "ext-2", validSaveInput())
	require.NoError(t, err)

	items, err := service.ListMine(t.Context(), "ext-1", "https://lineups.example.com")
	require.NoError(t, err)
	require.Len(t, items, 5)
	require.Equal(t, "Lineup 4", items[0].Lineup.Title)
	require.Equal(t, "Lineup 0", items[4].Lineup.Title)

	for _, item := range items {
		token, err := share.ExtractToken(item.ShareURL)
		require.NoError(t, err)

		data, _, err := share.DecodeDetailed(token)
		require.NoError(t, err)
		require.Equal(t, "Rovers", data.TeamName)
		require.Equal(t, "Classic Green", data.PitchColor.Label)
		require.Len(t, data.Players, 11)
	}
}

func TestLineupService_ListMineEmpty(t *testing.T) {
	t.Parallel()

	service, _ := newLineupServiceFixture(t)
	items, err := service.ListMine(t.Context(), "ext-2", "https://x")
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestLineupService_DeleteOwnerOnly(t *testing.T) {
	t.Parallel()

	service, _ := newLineupServiceFixture(t)
	saved, err := service.Save(t.Context(), "ext-1", validSaveInput())
	require.NoError(t, err)

	err = service.Delete(t.Context(), "ext-2", saved.ID)
	require.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, service.Delete(t.Context(), "ext-1", saved.ID))

	err = service.Delete(t.Context(), "ext-1", saved.ID)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestLineupService_PublicLineupShareLink(t *testing.T) {
	t.Parallel()

	service, _ := newLineupServiceFixture(t)
	input := validSaveInput()
	input.IsPublic = true
	input.Background = "bg-gradient-to-br from-sky-500 to-sky-600"
	saved, err := service.Save(t.Context(), "ext-1", input)
	require.NoError(t, err)

	link, err := service.ShareLink(t.Context(), "ext-2", saved.ID, "https://lineups.example.com/")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link.URL, "https://lineups.example.com/lineups/share?data="))

	data, _, err := share.DecodeDetailed(link.Token)
	require.NoError(t, err)
	require.Equal(t, "Ocean Blue", data.PitchColor.Label)

	_, err = service.ShareLink(t.Context(), "ext-2", saved.ID, "")
	require.True(t, errors.Is(err, ErrInvalidInput))
}
