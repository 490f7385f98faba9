package account

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// isCircuitFailure counts only transport failures and 5xx answers against the breaker.
func isCircuitFailure(err error) bool {
	return crerr.Is(err, errTransient)
}

// principalCacheKey keys the principal cache by token digest, never by the raw token.
func principalCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "principal:" + hex.EncodeToString(sum[:])
}

// buildURL joins the account base URL and an endpoint path. An absolute path wins.
func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSpace(baseURL)
	path = strings.TrimSpace(path)
	if path == "" {
		return strings.TrimSuffix(baseURL, "/")
	}
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}

	joined, err := url.JoinPath(baseURL, path)
	if err != nil {
		return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	}
	return joined
}
