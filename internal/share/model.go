package share

// PitchColor is one pitch background preset.
type PitchColor struct {
	Label        string `json:"label" yaml:"label"`
	Value        string `json:"value" yaml:"value"`
	PreviewClass string `json:"previewClass" yaml:"previewClass"`
}

// PlayerShareEntry is one player on the pitch. Top and Left are percentages.
// An empty Name and a nil Number both mean "not set".
type PlayerShareEntry struct {
	ID     int     `json:"id" yaml:"id"`
	Top    float64 `json:"top" yaml:"top"`
	Left   float64 `json:"left" yaml:"left"`
	Role   string  `json:"role" yaml:"role"`
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	Number *int    `json:"number,omitempty" yaml:"number,omitempty"`
}

// ShareableLineupData is everything needed to redraw a lineup.
type ShareableLineupData struct {
	TeamName      string             `json:"teamName" yaml:"teamName"`
	FormationName string             `json:"formationName" yaml:"formationName"`
	Players       []PlayerShareEntry `json:"players" yaml:"players"`
	PlayerColor   string             `json:"playerColor" yaml:"playerColor"`
	PitchColor    PitchColor         `json:"pitchColor" yaml:"pitchColor"`
}

func IntPtr(v int) *int {
	return &v
}

// Clone returns a deep copy; the players slice and number pointers are not shared.
func (d ShareableLineupData) Clone() ShareableLineupData {
	out := d
	out.Players = ClonePlayers(d.Players)
	return out
}

func ClonePlayers(players []PlayerShareEntry) []PlayerShareEntry {
	out := make([]PlayerShareEntry, len(players))
	for i, p := range players {
		out[i] = p
		if p.Number != nil {
			out[i].Number = IntPtr(*p.Number)
		}
	}
	return out
}
