package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Pranay-Prat/football-lineup-maker/internal/config"
	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                       config.EnvDev,
		HTTPAddr:                     ":0",
		StorageDriver:                config.StorageMemory,
		CacheEnabled:                 true,
		CacheTTL:                     time.Minute,
		CORSAllowedOrigins:           []string{"*"},
		ShareMaxTokenLength:          16 * 1024,
		ShareMaxPayloadBytes:         1 << 20,
		ShareWorkerCount:             2,
		AccountBaseURL:               "http://127.0.0.1:1",
		AccountIntrospectPath:        "/v1/auth/introspect",
		AccountTimeout:               time.Second,
		AccountCircuitEnabled:        true,
		AccountCircuitFailureCount:   5,
		AccountCircuitOpenTimeout:    time.Second,
		AccountCircuitHalfOpenMaxReq: 1,
	}
}

func TestNewHTTPServer_MemoryStorage(t *testing.T) {
	server, cleanup, err := NewHTTPServer(memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, cleanup()) })

	for _, path := range []string{"/healthz", "/v1/formations", "/v1/themes"} {
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/lineups", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	_, _, err := NewHTTPServer(cfg, logging.NewNop())
	require.Error(t, err)
}
