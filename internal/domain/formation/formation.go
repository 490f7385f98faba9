package formation

import (
	"strings"

	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

// Position is one slot of a formation. Top and Left are pitch percentages, goal line at the bottom.
type Position struct {
	ID   int     `json:"id"`
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
	Role string  `json:"role"`
}

type Formation struct {
	Name      string     `json:"name"`
	Positions []Position `json:"positions"`
}

// Players returns fresh share entries for the formation's slots.
func (f Formation) Players() []share.PlayerShareEntry {
	out := make([]share.PlayerShareEntry, len(f.Positions))
	for i, p := range f.Positions {
		out[i] = share.PlayerShareEntry{ID: p.ID, Top: p.Top, Left: p.Left, Role: p.Role}
	}
	return out
}

var presets = []Formation{
	build("4-3-3",
		row(72, "LB", "LCB", "RCB", "RB"),
		row(48, "LCM", "CM", "RCM"),
		row(22, "LW", "ST", "RW"),
	),
	build("4-4-2",
		row(72, "LB", "LCB", "RCB", "RB"),
		row(48, "LM", "LCM", "RCM", "RM"),
		row(22, "ST", "ST"),
	),
	build("4-2-3-1",
		row(72, "LB", "LCB", "RCB", "RB"),
		row(56, "CDM", "CDM"),
		row(36, "LM", "CAM", "RM"),
		row(16, "ST"),
	),
	build("3-5-2",
		row(72, "LCB", "CB", "RCB"),
		row(48, "LWB", "LCM", "CDM", "RCM", "RWB"),
		row(22, "ST", "ST"),
	),
	build("3-4-3",
		row(72, "LCB", "CB", "RCB"),
		row(48, "LM", "LCM", "RCM", "RM"),
		row(22, "LW", "ST", "RW"),
	),
	build("5-3-2",
		row(70, "LWB", "LCB", "CB", "RCB", "RWB"),
		row(46, "LCM", "CM", "RCM"),
		row(22, "ST", "ST"),
	),
	build("4-1-4-1",
		row(72, "LB", "LCB", "RCB", "RB"),
		row(58, "CDM"),
		row(40, "LM", "LCM", "RCM", "RM"),
		row(18, "ST"),
	),
	build("4-5-1",
		row(72, "LB", "LCB", "RCB", "RB"),
		row(45, "LM", "LCM", "CM", "RCM", "RM"),
		row(20, "ST"),
	),
}

type line struct {
	top   float64
	roles []string
}

func row(top float64, roles ...string) line {
	return line{top: top, roles: roles}
}

// build places the goalkeeper, then spreads each line evenly across the pitch width.
func build(name string, lines ...line) Formation {
	positions := []Position{{ID: 1, Top: 90, Left: 50, Role: "GK"}}
	for _, l := range lines {
		step := 100 / float64(len(l.roles)+1)
		for i, role := range l.roles {
			positions = append(positions, Position{
				ID:   len(positions) + 1,
				Top:  l.top,
				Left: roundTenth(step * float64(i+1)),
				Role: role,
			})
		}
	}
	return Formation{Name: name, Positions: positions}
}

func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

// All returns copies of every preset, in display order.
func All() []Formation {
	out := make([]Formation, len(presets))
	for i, f := range presets {
		out[i] = clone(f)
	}
	return out
}

func Find(name string) (Formation, bool) {
	name = strings.TrimSpace(name)
	for _, f := range presets {
		if f.Name == name {
			return clone(f), true
		}
	}
	return Formation{}, false
}

func Default() Formation {
	return clone(presets[0])
}

func clone(f Formation) Formation {
	f.Positions = append([]Position(nil), f.Positions...)
	return f
}
