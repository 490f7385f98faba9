package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/lineup"
	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})
	require.True(t, isUniqueViolation(err))
	require.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	require.False(t, isUniqueViolation(fakeErr("pq: relation lineups does not exist")))
}

func TestIsNotFound(t *testing.T) {
	require.True(t, isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)))
	require.False(t, isNotFound(fakeErr("other")))
}

func TestPlayersColumn_RoundTrip(t *testing.T) {
	in := playersColumn{
		{ID: 1, Top: 90, Left: 50, Role: "GK"},
		{ID: 9, Top: 20, Left: 50, Role: "ST", Name: "Nine", Number: share.IntPtr(9)},
	}

	value, err := in.Value()
	require.NoError(t, err)
	raw, ok := value.([]byte)
	require.True(t, ok)
	require.NotContains(t, string(raw), "null")

	var out playersColumn
	require.NoError(t, out.Scan(raw))
	require.Equal(t, in, out)

	require.NoError(t, out.Scan(string(raw)))
	require.Equal(t, in, out)
}

func TestPlayersColumn_Empty(t *testing.T) {
	value, err := playersColumn(nil).Value()
	require.NoError(t, err)
	require.Equal(t, []byte("[]"), value)

	var out playersColumn
	require.NoError(t, out.Scan(nil))
	require.Equal(t, playersColumn{}, out)

	require.NoError(t, out.Scan([]byte("null")))
	require.Equal(t, playersColumn([]lineup.PlayerPosition{}), out)

	require.Error(t, out.Scan(42))
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

func TestTableColumns(t *testing.T) {
	require.Equal(t, []string{
		"id", "user_id", "title", "name", "formation_name", "players",
		"background", "player_color", "is_public", "created_at", "updated_at",
	}, lineupColumns)
	require.Equal(t, []string{"id", "external_id", "email", "name", "image", "created_at"}, userColumns)
}
