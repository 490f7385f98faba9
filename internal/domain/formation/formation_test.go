package formation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	all := All()
	require.Len(t, all, 8)
	require.Equal(t, "4-3-3", Default().Name)

	seen := make(map[string]struct{}, len(all))
	for _, f := range all {
		_, dup := seen[f.Name]
		require.False(t, dup, f.Name)
		seen[f.Name] = struct{}{}

		require.Len(t, f.Positions, 11, f.Name)
		require.Equal(t, "GK", f.Positions[0].Role)
		for i, p := range f.Positions {
			require.Equal(t, i+1, p.ID)
			require.True(t, p.Top > 0 && p.Top < 100, "%s top %v", f.Name, p.Top)
			require.True(t, p.Left > 0 && p.Left < 100, "%s left %v", f.Name, p.Left)
		}
	}
}

func TestFind(t *testing.T) {
	f, ok := Find(" 3-5-2 ")
	require.True(t, ok)
	require.Equal(t, "3-5-2", f.Name)

	_, ok = Find("2-3-5")
	require.False(t, ok)
}

func TestFind_ReturnsCopy(t *testing.T) {
	f, ok := Find("4-4-2")
	require.True(t, ok)
	f.Positions[0].Role = "changed"

	again, _ := Find("4-4-2")
	require.Equal(t, "GK", again.Positions[0].Role)
}

func TestPlayers(t *testing.T) {
	players := Default().Players()
	require.Len(t, players, 11)
	require.Equal(t, 1, players[0].ID)
	require.Equal(t, 90.0, players[0].Top)
	require.Equal(t, 50.0, players[0].Left)
	require.Empty(t, players[0].Name)
	require.Nil(t, players[0].Number)
}
