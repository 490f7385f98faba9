package share

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/require"

	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/logging"
)

var classicGreen = PitchColor{
	Label:        "Classic Green",
	Value:        "bg-gradient-to-br from-green-500 to-green-600",
	PreviewClass: "bg-gradient-to-br from-green-500 to-green-600",
}

func sampleLineup() ShareableLineupData {
	return ShareableLineupData{
		TeamName:      "My Team",
		FormationName: "4-3-3",
		Players: []PlayerShareEntry{
			{ID: 1, Top: 90, Left: 50, Role: "GK"},
		},
		PlayerColor: "#ef4444",
		PitchColor:  classicGreen,
	}
}

func fullLineup() ShareableLineupData {
	roles := []string{"GK", "LB", "LCB", "RCB", "RB", "CM", "CDM", "CM", "LW", "ST", "RW"}
	players := make([]PlayerShareEntry, len(roles))
	for i, role := range roles {
		players[i] = PlayerShareEntry{
			ID:     i + 1,
			Top:    10 + float64(i)*7.5,
			Left:   12.5 + float64(i%4)*25,
			Role:   role,
			Name:   fmt.Sprintf("Player Number %d", i+1),
			Number: IntPtr(i + 1),
		}
	}
	return ShareableLineupData{
		TeamName:      "Sunday League Legends",
		FormationName: "4-3-3",
		Players:       players,
		PlayerColor:   "#3b82f6",
		PitchColor:    classicGreen,
	}
}

// legacyToken mirrors btoa(encodeURIComponent(JSON.stringify(data))) made URL-safe.
func legacyToken(t *testing.T, data ShareableLineupData) string {
	t.Helper()

	raw, err := sonic.Marshal(data)
	require.NoError(t, err)
	return EncodeURLSafe([]byte(encodeURIComponent(string(raw))))
}

func encodeURIComponent(s string) string {
	const unreserved = "-_.!~*'()"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') || strings.IndexByte(unreserved, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func newTestDecoder() *Decoder {
	return NewDecoder(logging.NewNop(), DefaultLimits())
}

func TestEncode_ConcreteScenario(t *testing.T) {
	token, err := Encode(sampleLineup())
	require.NoError(t, err)

	got, ok := newTestDecoder().Decode(context.Background(), token)
	require.True(t, ok)
	require.Len(t, got.Players, 1)

	p := got.Players[0]
	require.Equal(t, 1, p.ID)
	require.Equal(t, 90.0, p.Top)
	require.Equal(t, 50.0, p.Left)
	require.Equal(t, "GK", p.Role)
	require.Empty(t, p.Name)
	require.Nil(t, p.Number)
	require.Equal(t, sampleLineup(), got)
}

func TestEncode_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data ShareableLineupData
	}{
		{
			name: "zero players",
			data: ShareableLineupData{
				TeamName:      "Empty",
				FormationName: "4-4-2",
				Players:       []PlayerShareEntry{},
				PlayerColor:   "#22c55e",
				PitchColor:    classicGreen,
			},
		},
		{name: "single player", data: sampleLineup()},
		{name: "full eleven", data: fullLineup()},
		{
			name: "number zero and unicode name",
			data: ShareableLineupData{
				TeamName:      "Équipe 🦁",
				FormationName: "3-5-2",
				Players: []PlayerShareEntry{
					{ID: 4, Top: 33.333, Left: 0, Role: "cb", Name: "Zoë \"Rock\" Müller", Number: IntPtr(0)},
					{ID: 7, Top: 100, Left: 100, Role: "RW", Number: IntPtr(7)},
					{ID: 9, Top: 0.5, Left: 99.5, Role: "ST", Name: "Nine"},
				},
				PlayerColor: "#a855f7",
				PitchColor: PitchColor{
					Label:        "Ocean Blue",
					Value:        "bg-gradient-to-br from-sky-500 to-sky-600",
					PreviewClass: "bg-gradient-to-br from-sky-500 to-sky-600",
				},
			},
		},
	}

	decoder := newTestDecoder()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			token, err := Encode(tc.data)
			require.NoError(t, err)

			got, format, err := decoder.DecodeDetailed(token)
			require.NoError(t, err)
			require.Equal(t, FormatCompact, format)
			require.Equal(t, tc.data, got)
		})
	}
}

func TestEncode_EmptyNameIsDropped(t *testing.T) {
	data := sampleLineup()
	data.Players[0].Name = ""

	token, err := Encode(data)
	require.NoError(t, err)

	raw, err := DecodeURLSafe(token)
	require.NoError(t, err)
	text, err := Decompress(raw)
	require.NoError(t, err)
	require.NotContains(t, string(text), `"n"`)
	require.NotContains(t, string(text), `"nu"`)
	require.NotContains(t, string(text), "null")
}

func TestDecode_LegacyToken(t *testing.T) {
	for _, data := range []ShareableLineupData{sampleLineup(), fullLineup()} {
		token := legacyToken(t, data)
		require.Equal(t, FormatLegacy, Sniff(token))

		got, format, err := newTestDecoder().DecodeDetailed(token)
		require.NoError(t, err)
		require.Equal(t, FormatLegacy, format)
		require.Equal(t, data, got)
	}
}

func TestDecode_LegacyStandardAlphabetWithPadding(t *testing.T) {
	data := fullLineup()
	raw, err := sonic.Marshal(data)
	require.NoError(t, err)
	token := base64.StdEncoding.EncodeToString([]byte(encodeURIComponent(string(raw))))

	got, ok := newTestDecoder().Decode(context.Background(), token)
	require.True(t, ok)
	require.Equal(t, data, got)
}

func TestEncode_OnlyURLSafeCharacters(t *testing.T) {
	safe := regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	rng := rand.New(rand.NewPCG(7, 11))
	roles := []string{"GK", "CB", "LB", "RB", "CM", "CAM", "ST", "LW", "RW"}

	for i := 0; i < 200; i++ {
		data := ShareableLineupData{
			TeamName:      fmt.Sprintf("Team/%d+%c?&=", i, rune('A'+rng.IntN(26))),
			FormationName: "4-2-3-1",
			Players:       make([]PlayerShareEntry, rng.IntN(12)),
			PlayerColor:   "#f97316",
			PitchColor:    classicGreen,
		}
		for j := range data.Players {
			data.Players[j] = PlayerShareEntry{
				ID:   j + 1,
				Top:  rng.Float64() * 100,
				Left: rng.Float64() * 100,
				Role: roles[rng.IntN(len(roles))],
			}
			if rng.IntN(2) == 0 {
				data.Players[j].Name = fmt.Sprintf("nm %d ü", rng.IntN(1000))
			}
			if rng.IntN(2) == 0 {
				data.Players[j].Number = IntPtr(rng.IntN(99) + 1)
			}
		}

		token, err := Encode(data)
		require.NoError(t, err)
		require.Regexp(t, safe, token)

		got, ok := newTestDecoder().Decode(context.Background(), token)
		require.True(t, ok)
		require.Equal(t, data, got)
	}
}

func TestDecode_InvalidTokenReturnsFalse(t *testing.T) {
	decoder := newTestDecoder()
	for _, token := range []string{"not a valid token", "", "%%%", "eJwrSS0uAQAEXQHB", "JTdCJTdE"} {
		require.NotPanics(t, func() {
			got, ok := decoder.Decode(context.Background(), token)
			require.False(t, ok, "token %q", token)
			require.Equal(t, ShareableLineupData{}, got)
		})
	}
}

func TestDecodeDetailed_ErrorChain(t *testing.T) {
	_, format, err := DecodeDetailed("not a valid token")
	require.Error(t, err)
	require.Equal(t, FormatUnknown, format)
	require.True(t, crerr.Is(err, ErrLegacyDecodeFailure))

	_, _, err = DecodeDetailed("   ")
	require.True(t, crerr.Is(err, ErrMalformedPayload))
}

func TestDecoder_RejectsOversizedToken(t *testing.T) {
	token, err := Encode(fullLineup())
	require.NoError(t, err)

	decoder := NewDecoder(logging.NewNop(), Limits{MaxTokenLength: len(token) - 1})
	_, _, err = decoder.DecodeDetailed(token)
	require.True(t, crerr.Is(err, ErrMalformedPayload))
}

func TestDecoder_RejectsOversizedPayload(t *testing.T) {
	token, err := Encode(fullLineup())
	require.NoError(t, err)

	decoder := NewDecoder(logging.NewNop(), Limits{MaxPayloadBytes: 64})
	_, ok := decoder.Decode(context.Background(), token)
	require.False(t, ok)
}

func TestDecode_CompactMissingFields(t *testing.T) {
	packed, err := Compress([]byte(`{"t":"x","f":"4-3-3","c":"#fff"}`))
	require.NoError(t, err)

	_, ok := newTestDecoder().Decode(context.Background(), EncodeURLSafe(packed))
	require.False(t, ok)
}

func TestEncode_SmallerThanLegacy(t *testing.T) {
	data := fullLineup()

	token, err := Encode(data)
	require.NoError(t, err)
	require.Less(t, len(token), len(legacyToken(t, data)))
	require.Equal(t, FormatCompact, Sniff(token))
}

func TestInspect(t *testing.T) {
	token, err := Encode(fullLineup())
	require.NoError(t, err)

	info := Inspect(token)
	require.Equal(t, FormatCompact, info.Format)
	require.Equal(t, 11, info.Players)
	require.Empty(t, info.Error)

	info = Inspect("not a valid token")
	require.Equal(t, FormatUnknown, info.Format)
	require.NotEmpty(t, info.Error)
}

func TestDecode_LegacyRequiresPlayersAndPitchColor(t *testing.T) {
	for name, payload := range map[string]string{
		"no players":     `{"teamName":"A","formationName":"4-3-3","playerColor":"#fff","pitchColor":{"label":"x","value":"y"}}`,
		"no pitch color": `{"teamName":"A","formationName":"4-3-3","players":[],"playerColor":"#fff"}`,
		"null players":   `{"teamName":"A","players":null,"pitchColor":{"label":"x","value":"y"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			token := EncodeURLSafe([]byte(encodeURIComponent(payload)))
			_, _, err := DecodeDetailed(token)
			require.ErrorIs(t, err, ErrLegacyDecodeFailure)
		})
	}

	token := EncodeURLSafe([]byte(encodeURIComponent(`{"players":[],"pitchColor":{"label":"x","value":"y"}}`)))
	data, format, err := DecodeDetailed(token)
	require.NoError(t, err)
	require.Equal(t, FormatLegacy, format)
	require.Empty(t, data.Players)
	require.Equal(t, "x", data.PitchColor.Label)
}

func TestEncodeDecode_Concurrent(t *testing.T) {
	decoder := NewDecoder(logging.NewNop(), DefaultLimits())
	inputs := []ShareableLineupData{sampleLineup(), fullLineup()}

	const workers, rounds = 8, 200
	failures := make([]int, workers)
	var wg conc.WaitGroup
	for w := range workers {
		wg.Go(func() {
			for i := range rounds {
				want := inputs[(w+i)%len(inputs)]
				token, err := Encode(want)
				if err != nil {
					failures[w]++
					continue
				}
				got, ok := decoder.Decode(context.Background(), token)
				if !ok || got.TeamName != want.TeamName || len(got.Players) != len(want.Players) {
					failures[w]++
				}
			}
		})
	}
	wg.Wait()

	require.Equal(t, make([]int, workers), failures)
}
