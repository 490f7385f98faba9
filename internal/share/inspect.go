package share

import (
	"strings"
)

// TokenInfo summarizes a token without requiring it to decode.
type TokenInfo struct {
	Format       Format `json:"format" yaml:"format"`
	Guess        Format `json:"guess" yaml:"guess"`
	TokenLength  int    `json:"tokenLength" yaml:"tokenLength"`
	DecodedBytes int    `json:"decodedBytes" yaml:"decodedBytes"`
	Players      int    `json:"players" yaml:"players"`
	Error        string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Sniff guesses the format from the token prefix. A zlib header always
// encodes to a leading 'e'; a legacy token starts with the escaped '{'.
func Sniff(token string) Format {
	token = strings.TrimSpace(token)
	switch {
	case strings.HasPrefix(token, "JTdC"):
		return FormatLegacy
	case strings.HasPrefix(token, "e"):
		return FormatCompact
	default:
		return FormatUnknown
	}
}

func Inspect(token string) TokenInfo {
	info := TokenInfo{
		Format:      FormatUnknown,
		Guess:       Sniff(token),
		TokenLength: len(strings.TrimSpace(token)),
	}
	if raw, err := DecodeURLSafe(strings.TrimSpace(token)); err == nil {
		info.DecodedBytes = len(raw)
	}

	data, format, err := DecodeDetailed(token)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Format = format
	info.Players = len(data.Players)
	return info
}
