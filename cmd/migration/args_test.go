package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	steps, err = parseSteps([]string{" 3 "})
	require.NoError(t, err)
	assert.Equal(t, 3, steps)

	_, err = parseSteps([]string{"0"})
	require.Error(t, err)
	_, err = parseSteps([]string{"x"})
	require.Error(t, err)
}

func TestParseVersionAndTarget(t *testing.T) {
	v, err := parseVersion("20250101120000")
	require.NoError(t, err)
	assert.Equal(t, 20250101120000, v)

	v, err = parseVersion("-1")
	require.NoError(t, err)
	assert.Equal(t, -1, v)

	_, err = parseVersion("-2")
	require.Error(t, err)

	target, err := parseTarget("2")
	require.NoError(t, err)
	assert.Equal(t, uint(2), target)

	_, err = parseTarget("-2")
	require.Error(t, err)
}

func TestResolveMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MIGRATIONS_DIR", "")
	t.Setenv("MIGRATIONS_PATH", "")

	got, err := resolveMigrationsDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	t.Setenv("MIGRATIONS_DIR", dir)
	got, err = resolveMigrationsDir(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestResolveMigrationsDir_ReportsCheckedPaths(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MIGRATIONS_DIR", "")
	t.Setenv("MIGRATIONS_PATH", "/definitely/not/here")
	saved := defaultMigrationDirs
	defaultMigrationDirs = []string{"./db/migrations"}
	t.Cleanup(func() { defaultMigrationDirs = saved })

	_, err := resolveMigrationsDir("")
	require.ErrorContains(t, err, "/definitely/not/here, ./db/migrations")
}

func TestEnvBool(t *testing.T) {
	const key = "DB_DISABLE_PREPARED_BINARY_RESULT"
	tests := []struct {
		raw      string
		fallback bool
		want     bool
		wantErr  bool
	}{
		{raw: "", fallback: true, want: true},
		{raw: "  ", fallback: false, want: false},
		{raw: "1", want: true},
		{raw: "TRUE", want: true},
		{raw: " on ", want: true},
		{raw: "off", fallback: true, want: false},
		{raw: "0", fallback: true, want: false},
		{raw: "nope", wantErr: true},
	}
	for _, tt := range tests {
		t.Setenv(key, tt.raw)
		got, err := envBool(key, tt.fallback)
		if tt.wantErr {
			require.ErrorContains(t, err, key)
			continue
		}
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"up", "down", "version", "force", "goto", "migrate"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.NotEqual(t, root, cmd, name)
	}
}
