package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pranay-Prat/football-lineup-maker/internal/config"
	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "football-lineup-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestUptraceDisabledReason(t *testing.T) {
	assert.Equal(t, "UPTRACE_ENABLED=false", uptraceDisabledReason(config.Config{}))
	assert.Equal(t, "UPTRACE_DSN empty", uptraceDisabledReason(config.Config{UptraceEnabled: true, UptraceDSN: " "}))
	assert.Empty(t, uptraceDisabledReason(config.Config{UptraceEnabled: true, UptraceDSN: "https://token@api.uptrace.dev?grpc=4317"}))
}

func TestUptraceOptions(t *testing.T) {
	assert.Len(t, uptraceOptions(config.Config{ServiceName: "api"}), 6)
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, stop())
}

func TestPyroscopeConfig(t *testing.T) {
	got := pyroscopeConfig(config.Config{
		AppEnv:                 config.EnvProd,
		ServiceName:            "football-lineup-api",
		StorageDriver:          config.StoragePostgres,
		PyroscopeAppName:       "lineups",
		PyroscopeServerAddress: "http://pyroscope:4040",
	})

	assert.Equal(t, "lineups", got.ApplicationName)
	assert.Equal(t, map[string]string{
		"env":     config.EnvProd,
		"service": "football-lineup-api",
		"storage": config.StoragePostgres,
	}, got.Tags)
	assert.Equal(t, profileTypes, got.ProfileTypes)
}

func TestNewPprofServer(t *testing.T) {
	assert.Nil(t, NewPprofServer(config.Config{PprofEnabled: false}, logging.NewNop()))

	srv := NewPprofServer(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	require.NotNil(t, srv)
	assert.Equal(t, "127.0.0.1:0", srv.Addr)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil),
		httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil),
		httptest.NewRequest(http.MethodGet, "/debug/pprof/symbol", nil),
		httptest.NewRequest(http.MethodPost, "/debug/pprof/symbol", strings.NewReader("")),
	} {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, req.Method+" "+req.URL.Path)
	}

	require.NoError(t, StopPprofServer(srv, logging.NewNop(), 0))
	require.NoError(t, StopPprofServer(nil, nil, 0))
}
