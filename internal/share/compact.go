package share

type compactPitchColor struct {
	Label        string `json:"l"`
	Value        string `json:"v"`
	PreviewClass string `json:"p"`
}

type compactPlayer struct {
	ID     int     `json:"i"`
	Top    float64 `json:"t"`
	Left   float64 `json:"l"`
	Role   string  `json:"r"`
	Name   string  `json:"n,omitempty"`
	Number *int    `json:"nu,omitempty"`
}

// CompactData is the short-key form that goes on the wire.
// Players and PitchColor are pointers so a payload missing them can be told apart from an empty one.
type CompactData struct {
	TeamName      string             `json:"t"`
	FormationName string             `json:"f"`
	Players       *[]compactPlayer   `json:"p"`
	PlayerColor   string             `json:"c"`
	PitchColor    *compactPitchColor `json:"pc"`
}

func ToCompact(data ShareableLineupData) CompactData {
	players := make([]compactPlayer, len(data.Players))
	for i, p := range data.Players {
		players[i] = compactPlayer{
			ID:   p.ID,
			Top:  p.Top,
			Left: p.Left,
			Role: p.Role,
			Name: p.Name,
		}
		if p.Number != nil {
			players[i].Number = IntPtr(*p.Number)
		}
	}

	return CompactData{
		TeamName:      data.TeamName,
		FormationName: data.FormationName,
		Players:       &players,
		PlayerColor:   data.PlayerColor,
		PitchColor: &compactPitchColor{
			Label:        data.PitchColor.Label,
			Value:        data.PitchColor.Value,
			PreviewClass: data.PitchColor.PreviewClass,
		},
	}
}

func FromCompact(compact CompactData) ShareableLineupData {
	out := ShareableLineupData{
		TeamName:      compact.TeamName,
		FormationName: compact.FormationName,
		PlayerColor:   compact.PlayerColor,
	}
	if compact.PitchColor != nil {
		out.PitchColor = PitchColor{
			Label:        compact.PitchColor.Label,
			Value:        compact.PitchColor.Value,
			PreviewClass: compact.PitchColor.PreviewClass,
		}
	}

	var players []compactPlayer
	if compact.Players != nil {
		players = *compact.Players
	}
	out.Players = make([]PlayerShareEntry, len(players))
	for i, p := range players {
		out.Players[i] = PlayerShareEntry{
			ID:   p.ID,
			Top:  p.Top,
			Left: p.Left,
			Role: p.Role,
			Name: p.Name,
		}
		if p.Number != nil {
			out.Players[i].Number = IntPtr(*p.Number)
		}
	}
	return out
}

func (c CompactData) complete() bool {
	return c.Players != nil && c.PitchColor != nil
}
