package editor

import (
	"sync"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/formation"
	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/theme"
	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

// Store owns the lineup being edited. All reads and writes go through its methods.
type Store struct {
	mu                    sync.RWMutex
	teamName              string
	selectedFormationName string
	players               []share.PlayerShareEntry
	playerColor           string
	pitchColor            share.PitchColor
}

func NewStore() *Store {
	return &Store{
		selectedFormationName: formation.Default().Name,
		players:               []share.PlayerShareEntry{},
		playerColor:           theme.DefaultPlayerColor().Hex,
		pitchColor:            theme.DefaultPitchColor(),
	}
}

// FromShareData seeds a store from a decoded lineup.
func FromShareData(data share.ShareableLineupData) *Store {
	s := NewStore()
	s.teamName = data.TeamName
	if data.FormationName != "" {
		s.selectedFormationName = data.FormationName
	}
	s.players = share.ClonePlayers(data.Players)
	if data.PlayerColor != "" {
		s.playerColor = data.PlayerColor
	}
	if data.PitchColor != (share.PitchColor{}) {
		s.pitchColor = data.PitchColor
	}
	return s
}

func (s *Store) SetPlayers(players []share.PlayerShareEntry) {
	cloned := share.ClonePlayers(players)
	s.mu.Lock()
	s.players = cloned
	s.mu.Unlock()
}

func (s *Store) SetSelectedFormation(name string) {
	s.mu.Lock()
	s.selectedFormationName = name
	s.mu.Unlock()
}

// ApplyFormation selects f and resets the players to its slots, keeping
// names and numbers of players whose id still exists.
func (s *Store) ApplyFormation(f formation.Formation) {
	next := f.Players()

	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[int]share.PlayerShareEntry, len(s.players))
	for _, p := range s.players {
		byID[p.ID] = p
	}
	for i := range next {
		if prev, ok := byID[next[i].ID]; ok {
			next[i].Name = prev.Name
			next[i].Number = prev.Number
		}
	}
	s.selectedFormationName = f.Name
	s.players = next
}

func (s *Store) SetPlayerColor(color string) {
	s.mu.Lock()
	s.playerColor = color
	s.mu.Unlock()
}

func (s *Store) SetPitchColor(color share.PitchColor) {
	s.mu.Lock()
	s.pitchColor = color
	s.mu.Unlock()
}

func (s *Store) SetTeamName(name string) {
	s.mu.Lock()
	s.teamName = name
	s.mu.Unlock()
}

// UpdatePlayerPosition moves the player with id. It reports whether the player exists.
func (s *Store) UpdatePlayerPosition(id int, top, left float64) bool {
	return s.updatePlayer(id, func(p *share.PlayerShareEntry) {
		p.Top = top
		p.Left = left
	})
}

func (s *Store) UpdatePlayerName(id int, name string) bool {
	return s.updatePlayer(id, func(p *share.PlayerShareEntry) {
		p.Name = name
	})
}

// UpdatePlayerNumber sets the shirt number; nil clears it.
func (s *Store) UpdatePlayerNumber(id int, number *int) bool {
	return s.updatePlayer(id, func(p *share.PlayerShareEntry) {
		if number == nil {
			p.Number = nil
			return
		}
		p.Number = share.IntPtr(*number)
	})
}

// updatePlayer replaces the slice so earlier snapshots never observe the write.
func (s *Store) updatePlayer(id int, apply func(*share.PlayerShareEntry)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	next := share.ClonePlayers(s.players)
	apply(&next[idx])
	s.players = next
	return true
}

func (s *Store) Players() []share.PlayerShareEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return share.ClonePlayers(s.players)
}

func (s *Store) SelectedFormationName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedFormationName
}

// Snapshot returns an independent copy of the current lineup, ready to encode.
func (s *Store) Snapshot() share.ShareableLineupData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return share.ShareableLineupData{
		TeamName:      s.teamName,
		FormationName: s.selectedFormationName,
		Players:       share.ClonePlayers(s.players),
		PlayerColor:   s.playerColor,
		PitchColor:    s.pitchColor,
	}
}
