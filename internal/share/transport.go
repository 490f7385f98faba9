package share

import (
	"encoding/base64"
	"strings"
)

var (
	toURLSafe   = strings.NewReplacer("+", "-", "/", "_")
	fromURLSafe = strings.NewReplacer("-", "+", "_", "/")
)

// EncodeURLSafe is standard base64 with '+' as '-', '/' as '_' and no padding.
func EncodeURLSafe(data []byte) string {
	return strings.TrimRight(toURLSafe.Replace(base64.StdEncoding.EncodeToString(data)), "=")
}

// DecodeURLSafe reverses EncodeURLSafe. Standard-alphabet and padded input is accepted too.
func DecodeURLSafe(text string) ([]byte, error) {
	s := fromURLSafe.Replace(strings.TrimRight(text, "="))
	if rem := len(s) % 4; rem != 0 {
		s += strings.Repeat("=", 4-rem)
	}

	out, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, malformed(err, "decode url-safe base64")
	}
	return out, nil
}
