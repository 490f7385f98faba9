package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

type fakeClipboard struct {
	got []string
	err error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.got = append(f.got, text)
	return nil
}

type result struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, clip share.ClipboardWriter, draftPath string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(clip)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--file", draftPath}, args...))
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func decodeView(t *testing.T, raw string) draftView {
	t.Helper()
	var view draftView
	require.NoError(t, sonic.UnmarshalString(raw, &view))
	return view
}

func TestNewAndShow(t *testing.T) {
	draft := filepath.Join(t.TempDir(), "lineup.yaml")

	res := runCLI(t, nil, draft, "new", "--formation", "4-4-2", "--team", " FC Test ")
	require.NoError(t, res.err)
	view := decodeView(t, res.stdout)
	assert.Equal(t, "4-4-2", view.FormationName)
	assert.Equal(t, "FC Test", view.TeamName)
	assert.Len(t, view.Players, 11)
	assert.Equal(t, 1, view.Lines.GK)
	assert.Equal(t, 4, view.Lines.DEF)
	assert.Equal(t, 4, view.Lines.MID)
	assert.Equal(t, 2, view.Lines.FWD)

	res = runCLI(t, nil, draft, "show")
	require.NoError(t, res.err)
	assert.Equal(t, view, decodeView(t, res.stdout))
}

func TestNew_UnknownFormation(t *testing.T) {
	res := runCLI(t, nil, filepath.Join(t.TempDir(), "d.yaml"), "new", "--formation", "2-2-6")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "4-3-3")
}

func TestEditCommands(t *testing.T) {
	draft := filepath.Join(t.TempDir(), "lineup.yaml")
	require.NoError(t, runCLI(t, nil, draft, "new").err)

	require.NoError(t, runCLI(t, nil, draft, "set-player", "10", "--name", "Messi", "--number", "10").err)
	require.NoError(t, runCLI(t, nil, draft, "move", "10", "30.5", "45").err)
	require.NoError(t, runCLI(t, nil, draft, "color", "blue").err)
	require.NoError(t, runCLI(t, nil, draft, "pitch", "Ocean", "Blue").err)

	view := decodeView(t, runCLI(t, nil, draft, "show").stdout)
	assert.Equal(t, "#3b82f6", view.PlayerColor)
	assert.Equal(t, "Ocean Blue", view.PitchColor.Label)

	var found bool
	for _, p := range view.Players {
		if p.ID != 10 {
			continue
		}
		found = true
		assert.Equal(t, "Messi", p.Name)
		require.NotNil(t, p.Number)
		assert.Equal(t, 10, *p.Number)
		assert.Equal(t, 30.5, p.Top)
		assert.Equal(t, 45.0, p.Left)
	}
	require.True(t, found)

	require.NoError(t, runCLI(t, nil, draft, "set-player", "10", "--clear-number").err)
	view = decodeView(t, runCLI(t, nil, draft, "show").stdout)
	for _, p := range view.Players {
		if p.ID == 10 {
			assert.Nil(t, p.Number)
			assert.Equal(t, "Messi", p.Name)
		}
	}
}

func TestEditCommands_Rejects(t *testing.T) {
	draft := filepath.Join(t.TempDir(), "lineup.yaml")
	require.NoError(t, runCLI(t, nil, draft, "new").err)

	tests := map[string][]string{
		"unknown player":   {"move", "42", "10", "10"},
		"top out of range": {"move", "2", "101", "10"},
		"bad id":           {"set-player", "abc", "--name", "x"},
		"nothing to set":   {"set-player", "2"},
		"number too large": {"set-player", "2", "--number", "1000"},
		"unknown color":    {"color", "mauve"},
		"bad output":       {"show", "--output", "xml"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			require.Error(t, runCLI(t, nil, draft, args...).err)
		})
	}
}

func TestShareDecodeRoundTrip(t *testing.T) {
	t.Setenv("APP_PUBLIC_BASE_URL", "")
	dir := t.TempDir()
	draft := filepath.Join(dir, "lineup.yaml")
	require.NoError(t, runCLI(t, nil, draft, "new", "--team", "Share FC").err)
	require.NoError(t, runCLI(t, nil, draft, "set-player", "1", "--name", "Keeper").err)

	clip := &fakeClipboard{}
	res := runCLI(t, clip, draft, "share", "--origin", "https://lineups.example/", "--copy")
	require.NoError(t, res.err)
	link := strings.TrimSpace(res.stdout)
	assert.True(t, strings.HasPrefix(link, "https://lineups.example/lineups/share?data="), link)
	assert.Equal(t, []string{link}, clip.got)
	assert.Contains(t, res.stderr, "copied to clipboard")

	copyPath := filepath.Join(dir, "copy.yaml")
	res = runCLI(t, nil, copyPath, "decode", link, "--save")
	require.NoError(t, res.err)

	var data share.ShareableLineupData
	require.NoError(t, sonic.UnmarshalString(res.stdout, &data))
	assert.Equal(t, "Share FC", data.TeamName)
	assert.Equal(t, "Keeper", data.Players[0].Name)

	saved := decodeView(t, runCLI(t, nil, copyPath, "show").stdout)
	assert.Equal(t, "Share FC", saved.TeamName)
	assert.Len(t, saved.Players, 11)
}

func TestShare_DefaultOriginAndClipboardFailure(t *testing.T) {
	t.Setenv("APP_PUBLIC_BASE_URL", "")
	draft := filepath.Join(t.TempDir(), "lineup.yaml")

	clip := &fakeClipboard{err: errors.New("denied")}
	res := runCLI(t, clip, draft, "share", "--copy")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, defaultShareOrigin+"/lineups/share?data="))
	assert.Contains(t, res.stderr, "could not copy")
}

func TestDecode_InvalidToken(t *testing.T) {
	res := runCLI(t, nil, filepath.Join(t.TempDir(), "d.yaml"), "decode", "!!not-a-token!!")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid or expired")
}

func TestInspect(t *testing.T) {
	draft := filepath.Join(t.TempDir(), "lineup.yaml")
	token, err := share.Encode(share.ShareableLineupData{
		TeamName:    "Inspect",
		Players:     []share.PlayerShareEntry{{ID: 1, Top: 90, Left: 50, Role: "GK"}},
		PlayerColor: "#ef4444",
		PitchColor:  share.PitchColor{Label: "x", Value: "y", PreviewClass: "z"},
	})
	require.NoError(t, err)

	res := runCLI(t, nil, draft, "inspect", token, "--output", "yaml")
	require.NoError(t, res.err)
	var info share.TokenInfo
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &info))
	assert.Equal(t, share.FormatCompact, info.Format)
	assert.Equal(t, 1, info.Players)
	assert.Empty(t, info.Error)

	res = runCLI(t, nil, draft, "inspect", "garbage")
	require.NoError(t, res.err)
	var bad share.TokenInfo
	require.NoError(t, sonic.UnmarshalString(res.stdout, &bad))
	assert.Equal(t, share.FormatUnknown, bad.Format)
	assert.NotEmpty(t, bad.Error)
}
