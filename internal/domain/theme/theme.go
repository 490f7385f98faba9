package theme

import (
	"strings"

	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

type PlayerColor struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Hex   string `json:"hex"`
}

var playerColors = []PlayerColor{
	{Label: "Red", Value: "bg-red-500", Hex: "#ef4444"},
	{Label: "Blue", Value: "bg-blue-500", Hex: "#3b82f6"},
	{Label: "Green", Value: "bg-green-500", Hex: "#22c55e"},
	{Label: "Yellow", Value: "bg-yellow-500", Hex: "#eab308"},
	{Label: "Purple", Value: "bg-purple-500", Hex: "#a855f7"},
	{Label: "Orange", Value: "bg-orange-500", Hex: "#f97316"},
	{Label: "Pink", Value: "bg-pink-500", Hex: "#ec4899"},
	{Label: "Teal", Value: "bg-teal-500", Hex: "#14b8a6"},
	{Label: "Indigo", Value: "bg-indigo-500", Hex: "#6366f1"},
}

var pitchColors = []share.PitchColor{
	gradient("Classic Green", "green-500", "green-600"),
	gradient("Light Green", "lime-500", "lime-600"),
	gradient("Ocean Blue", "sky-500", "sky-600"),
	gradient("Cadet Green", "emerald-600", "emerald-700"),
	gradient("Forest Green", "green-700", "green-800"),
	gradient("Emerald", "emerald-500", "emerald-600"),
}

func gradient(label, from, to string) share.PitchColor {
	class := "bg-gradient-to-br from-" + from + " to-" + to
	return share.PitchColor{Label: label, Value: class, PreviewClass: class}
}

func PlayerColors() []PlayerColor {
	return append([]PlayerColor(nil), playerColors...)
}

func PitchColors() []share.PitchColor {
	return append([]share.PitchColor(nil), pitchColors...)
}

func DefaultPlayerColor() PlayerColor {
	return playerColors[0]
}

func DefaultPitchColor() share.PitchColor {
	return pitchColors[0]
}

// FindPitchColor matches by label, case-insensitively.
func FindPitchColor(label string) (share.PitchColor, bool) {
	label = strings.TrimSpace(label)
	for _, c := range pitchColors {
		if strings.EqualFold(c.Label, label) {
			return c, true
		}
	}
	return share.PitchColor{}, false
}

// FindPlayerColor matches by hex value or label.
func FindPlayerColor(v string) (PlayerColor, bool) {
	v = strings.TrimSpace(v)
	for _, c := range playerColors {
		if strings.EqualFold(c.Hex, v) || strings.EqualFold(c.Label, v) {
			return c, true
		}
	}
	return PlayerColor{}, false
}

// ResolvePitchColor finds a preset by label or by value class. Anything else
// is kept as a custom color using the raw string for every field.
func ResolvePitchColor(v string) share.PitchColor {
	if c, ok := FindPitchColor(v); ok {
		return c
	}
	v = strings.TrimSpace(v)
	for _, c := range pitchColors {
		if c.Value == v {
			return c
		}
	}
	return share.PitchColor{Label: v, Value: v, PreviewClass: v}
}
