package share

import (
	"context"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/logging"
)

// DefaultMaxTokenLength bounds tokens accepted by a Decoder.
const DefaultMaxTokenLength = 16 * 1024

// Format identifies which wire format a token was decoded from.
type Format string

const (
	FormatUnknown Format = "unknown"
	FormatCompact Format = "compact"
	FormatLegacy  Format = "legacy"
)

// Encode renders data as a compact, deflated, URL-safe token.
func Encode(data ShareableLineupData) (string, error) {
	raw, err := sonic.Marshal(ToCompact(data))
	if err != nil {
		return "", crerr.Wrap(err, "marshal compact lineup")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := compressTo(buf, raw); err != nil {
		return "", err
	}
	return EncodeURLSafe(buf.B), nil
}

type Limits struct {
	MaxTokenLength  int
	MaxPayloadBytes int
}

func DefaultLimits() Limits {
	return Limits{
		MaxTokenLength:  DefaultMaxTokenLength,
		MaxPayloadBytes: DefaultMaxPayloadBytes,
	}
}

// Decoder turns tokens back into lineups, falling back to the legacy format
// whenever the compact pipeline fails.
type Decoder struct {
	logger *logging.Logger
	limits Limits
}

func NewDecoder(logger *logging.Logger, limits Limits) *Decoder {
	if logger == nil {
		logger = logging.Default()
	}
	defaults := DefaultLimits()
	if limits.MaxTokenLength <= 0 {
		limits.MaxTokenLength = defaults.MaxTokenLength
	}
	if limits.MaxPayloadBytes <= 0 {
		limits.MaxPayloadBytes = defaults.MaxPayloadBytes
	}
	return &Decoder{logger: logger, limits: limits}
}

var defaultDecoder = NewDecoder(logging.NewNop(), DefaultLimits())

// DecodeDetailed decodes with default limits and reports the failure chain.
func DecodeDetailed(token string) (ShareableLineupData, Format, error) {
	return defaultDecoder.DecodeDetailed(token)
}

// Decode never fails loudly: any error is logged and reported as ok=false.
func (d *Decoder) Decode(ctx context.Context, token string) (data ShareableLineupData, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "share token decode panicked", "panic", r)
			data, ok = ShareableLineupData{}, false
		}
	}()

	data, format, err := d.DecodeDetailed(token)
	if err != nil {
		d.logger.WarnContext(ctx, "failed to decode share token",
			"token_length", len(token),
			"error", err,
		)
		return ShareableLineupData{}, false
	}

	d.logger.DebugContext(ctx, "share token decoded", "format", string(format), "players", len(data.Players))
	return data, true
}

func (d *Decoder) DecodeDetailed(token string) (ShareableLineupData, Format, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ShareableLineupData{}, FormatUnknown, crerr.Mark(crerr.New("empty share token"), ErrMalformedPayload)
	}
	if len(token) > d.limits.MaxTokenLength {
		return ShareableLineupData{}, FormatUnknown, crerr.Mark(
			crerr.Newf("share token is %d bytes, limit %d", len(token), d.limits.MaxTokenLength),
			ErrMalformedPayload,
		)
	}

	data, primaryErr := d.decodeCompact(token)
	if primaryErr == nil {
		return data, FormatCompact, nil
	}

	data, legacyErr := decodeLegacy(token)
	if legacyErr == nil {
		return data, FormatLegacy, nil
	}

	return ShareableLineupData{}, FormatUnknown, crerr.WithSecondaryError(legacyErr, primaryErr)
}

func (d *Decoder) decodeCompact(token string) (ShareableLineupData, error) {
	raw, err := DecodeURLSafe(token)
	if err != nil {
		return ShareableLineupData{}, err
	}

	text, err := decompressLimit(raw, d.limits.MaxPayloadBytes)
	if err != nil {
		return ShareableLineupData{}, err
	}

	var compact CompactData
	if err := sonic.Unmarshal(text, &compact); err != nil {
		return ShareableLineupData{}, malformed(err, "parse compact lineup")
	}
	if !compact.complete() {
		return ShareableLineupData{}, crerr.Mark(crerr.New("compact lineup is missing players or pitch color"), ErrMalformedPayload)
	}
	return FromCompact(compact), nil
}

type legacyLineup struct {
	TeamName      string             `json:"teamName"`
	FormationName string             `json:"formationName"`
	Players       []PlayerShareEntry `json:"players"`
	PlayerColor   string             `json:"playerColor"`
	PitchColor    *PitchColor        `json:"pitchColor"`
}

// decodeLegacy reads base64(encodeURIComponent(verbose JSON)) tokens.
func decodeLegacy(token string) (ShareableLineupData, error) {
	raw, err := DecodeURLSafe(token)
	if err != nil {
		return ShareableLineupData{}, legacyFailure(err, "decode legacy base64")
	}

	text, err := url.PathUnescape(string(raw))
	if err != nil {
		return ShareableLineupData{}, legacyFailure(err, "unescape legacy payload")
	}

	var verbose legacyLineup
	if err := sonic.UnmarshalString(text, &verbose); err != nil {
		return ShareableLineupData{}, legacyFailure(err, "parse legacy lineup")
	}
	if verbose.Players == nil || verbose.PitchColor == nil {
		return ShareableLineupData{}, crerr.Mark(crerr.New("legacy lineup is missing players or pitch color"), ErrLegacyDecodeFailure)
	}

	return ShareableLineupData{
		TeamName:      verbose.TeamName,
		FormationName: verbose.FormationName,
		Players:       verbose.Players,
		PlayerColor:   verbose.PlayerColor,
		PitchColor:    *verbose.PitchColor,
	}, nil
}

func legacyFailure(err error, msg string) error {
	return crerr.Mark(crerr.Wrap(err, msg), ErrLegacyDecodeFailure)
}
