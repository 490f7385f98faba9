package share

import (
	"net/url"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

const (
	SharePath  = "/lineups/share"
	QueryParam = "data"
)

// GenerateShareableURL builds origin + "/lineups/share?data=" + token.
func GenerateShareableURL(origin string, data ShareableLineupData) (string, error) {
	token, err := Encode(data)
	if err != nil {
		return "", err
	}
	return BuildShareURL(origin, token), nil
}

func BuildShareURL(origin, token string) string {
	return strings.TrimRight(strings.TrimSpace(origin), "/") + SharePath + "?" + QueryParam + "=" + token
}

// ExtractToken accepts either a bare token or a share URL carrying one.
func ExtractToken(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "?") && !strings.Contains(raw, "://") {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", crerr.Wrap(err, "parse share url")
	}
	token := u.Query().Get(QueryParam)
	if token == "" {
		return "", crerr.Newf("share url has no %q parameter", QueryParam)
	}
	return token, nil
}
