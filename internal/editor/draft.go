package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

const (
	// DraftFileName is the default draft location inside the working directory.
	DraftFileName = "lineup-storage.yaml"
	draftVersion  = 1
)

// draft is the persisted subset of the editor state.
type draft struct {
	Version               int                      `yaml:"version"`
	TeamName              string                   `yaml:"teamName,omitempty"`
	SelectedFormationName string                   `yaml:"selectedFormationName"`
	Players               []share.PlayerShareEntry `yaml:"players"`
	PlayerColor           string                   `yaml:"playerColor"`
	PitchColor            share.PitchColor         `yaml:"pitchColor"`
}

// SaveDraft writes the store to path, replacing any previous draft atomically.
func (s *Store) SaveDraft(path string) error {
	snap := s.Snapshot()
	out, err := yaml.Marshal(draft{
		Version:               draftVersion,
		TeamName:              snap.TeamName,
		SelectedFormationName: snap.FormationName,
		Players:               snap.Players,
		PlayerColor:           snap.PlayerColor,
		PitchColor:            snap.PitchColor,
	})
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".lineup-draft-*")
	if err != nil {
		return fmt.Errorf("create draft temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(out); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write draft: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close draft: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace draft: %w", err)
	}
	return nil
}

// LoadDraft restores a store from path. A missing file yields a fresh store.
func LoadDraft(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}

	var d draft
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse draft %s: %w", path, err)
	}
	if d.Version > draftVersion {
		return nil, fmt.Errorf("draft version %d is newer than supported %d", d.Version, draftVersion)
	}

	return FromShareData(share.ShareableLineupData{
		TeamName:      d.TeamName,
		FormationName: d.SelectedFormationName,
		Players:       d.Players,
		PlayerColor:   d.PlayerColor,
		PitchColor:    d.PitchColor,
	}), nil
}
