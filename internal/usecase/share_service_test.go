package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/formation"
	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/theme"
	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/logging"
	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

func sampleShareData() share.ShareableLineupData {
	return share.ShareableLineupData{
		TeamName:      "My Team",
		FormationName: "4-3-3",
		Players:       formation.Default().Players(),
		PlayerColor:   theme.DefaultPlayerColor().Hex,
		PitchColor:    theme.DefaultPitchColor(),
	}
}

func TestShareService_CreateAndResolve(t *testing.T) {
	t.Parallel()

	service := NewShareService(nil, 0, logging.NewNop())
	link, err := service.Create(t.Context(), "https://lineups.example.com", sampleShareData())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link.URL, "https://lineups.example.com/lineups/share?data="))
	require.True(t, strings.HasSuffix(link.URL, link.Token))

	got, err := service.Resolve(t.Context(), link.Token)
	require.NoError(t, err)
	require.Equal(t, sampleShareData(), got)
}

func TestShareService_CreateValidation(t *testing.T) {
	t.Parallel()

	service := NewShareService(nil, 0, logging.NewNop())

	_, err := service.Create(t.Context(), " ", sampleShareData())
	require.True(t, errors.Is(err, ErrInvalidInput))

	bad := sampleShareData()
	bad.Players[1].ID = bad.Players[0].ID
	_, err = service.Create(t.Context(), "https://x", bad)
	require.True(t, errors.Is(err, ErrInvalidInput))

	tiny := NewShareService(nil, 8, logging.NewNop())
	_, err = tiny.Create(t.Context(), "https://x", sampleShareData())
	require.True(t, errors.Is(err, ErrInvalidInput))
}

func TestShareService_ResolveInvalid(t *testing.T) {
	t.Parallel()

	service := NewShareService(nil, 0, logging.NewNop())
	for _, token := range []string{"", "not a valid token", strings.Repeat("e", share.DefaultMaxTokenLength+1)} {
		_, err := service.Resolve(t.Context(), token)
		require.True(t, errors.Is(err, ErrInvalidShareLink), "token length %d", len(token))
	}
}
