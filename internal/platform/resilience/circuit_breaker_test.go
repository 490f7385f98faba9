package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestBreaker(threshold int, timeout time.Duration, trials int) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      timeout,
		HalfOpenMaxReq:   trials,
	})
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, now := newTestBreaker(2, 5*time.Second, 1)

	require.NoError(t, b.Allow())
	b.RecordFailure()
	require.Equal(t, CircuitStateClosed, b.State())

	b.RecordFailure()
	require.Equal(t, CircuitStateOpen, b.State())
	require.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	*now = now.Add(6 * time.Second)
	require.NoError(t, b.Allow())
	require.Equal(t, CircuitStateHalfOpen, b.State())

	b.RecordSuccess()
	require.Equal(t, CircuitStateClosed, b.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, now := newTestBreaker(1, time.Second, 2)

	b.RecordFailure()
	*now = now.Add(2 * time.Second)

	require.NoError(t, b.Allow())
	require.NoError(t, b.Allow())
	require.ErrorIs(t, b.Allow(), ErrCircuitOpen, "trial budget exhausted")

	b.RecordFailure()
	require.Equal(t, CircuitStateOpen, b.State())
}

func TestCircuitBreaker_DoCountsOnlyClassifiedFailures(t *testing.T) {
	b, _ := newTestBreaker(1, time.Minute, 1)
	transient := errors.New("transient")
	permanent := errors.New("permanent")
	isTransient := func(err error) bool { return errors.Is(err, transient) }

	err := b.Do(func() error { return permanent }, isTransient)
	require.ErrorIs(t, err, permanent)
	require.Equal(t, CircuitStateClosed, b.State())

	err = b.Do(func() error { return transient }, isTransient)
	require.ErrorIs(t, err, transient)
	require.Equal(t, CircuitStateOpen, b.State())

	err = b.Do(func() error { return nil }, isTransient)
	require.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCircuitBreakerConfig_WithDefaults(t *testing.T) {
	got := CircuitBreakerConfig{Enabled: false}.withDefaults()
	require.False(t, got.Enabled)
	require.Equal(t, "default", got.Name)
	require.Equal(t, 5, got.FailureThreshold)
	require.Equal(t, 15*time.Second, got.OpenTimeout)
	require.Equal(t, 2, got.HalfOpenMaxReq)
}

func TestCircuitBreaker_ReportsStateChanges(t *testing.T) {
	type change struct {
		name     string
		from, to CircuitState
	}
	var changes []change

	b := NewCircuitBreaker(CircuitBreakerConfig{
		Name:             "account",
		FailureThreshold: 1,
		OpenTimeout:      time.Second,
		HalfOpenMaxReq:   1,
		OnStateChange: func(name string, from, to CircuitState) {
			changes = append(changes, change{name, from, to})
		},
	})
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	b.RecordFailure()
	now = now.Add(2 * time.Second)
	require.NoError(t, b.Allow())
	b.RecordSuccess()

	require.Equal(t, []change{
		{"account", CircuitStateClosed, CircuitStateOpen},
		{"account", CircuitStateOpen, CircuitStateHalfOpen},
		{"account", CircuitStateHalfOpen, CircuitStateClosed},
	}, changes)
	require.Equal(t, "account", b.Name())
}
