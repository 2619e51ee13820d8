package ratelimit

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	clock := clockwork.NewFakeClock()
	limiter := New(5, time.Minute, clock)

	for i := 0; i < 5; i++ {
		result := limiter.Allow("1.2.3.4")
		require.True(t, result.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 4-i, result.Remaining)
	}
}

func TestLimiter_RejectsSixthWithinWindow(t *testing.T) {
	clock := clockwork.NewFakeClock()
	limiter := New(5, time.Minute, clock)

	for i := 0; i < 5; i++ {
		require.True(t, limiter.Allow("1.2.3.4").Allowed)
	}

	result := limiter.Allow("1.2.3.4")
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Equal(t, 60, result.RetryAfterSeconds)
}

func TestLimiter_ReportsResetTime(t *testing.T) {
	clock := clockwork.NewFakeClock()
	limiter := New(1, time.Minute, clock)

	result := limiter.Allow("1.2.3.4")
	require.True(t, result.Allowed)
	assert.Equal(t, clock.Now().Add(time.Minute), result.Reset)

	clock.Advance(10 * time.Second)

	result = limiter.Allow("1.2.3.4")
	require.False(t, result.Allowed)
	assert.Equal(t, clock.Now().Add(time.Minute), result.Reset)
}

func TestLimiter_WindowSlides(t *testing.T) {
	clock := clockwork.NewFakeClock()
	limiter := New(5, time.Minute, clock)

	for i := 0; i < 5; i++ {
		require.True(t, limiter.Allow("1.2.3.4").Allowed)
	}
	require.False(t, limiter.Allow("1.2.3.4").Allowed)

	clock.Advance(time.Minute + time.Second)

	result := limiter.Allow("1.2.3.4")
	assert.True(t, result.Allowed)
	assert.Equal(t, 4, result.Remaining)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	clock := clockwork.NewFakeClock()
	limiter := New(1, time.Minute, clock)

	require.True(t, limiter.Allow("1.2.3.4").Allowed)
	require.False(t, limiter.Allow("1.2.3.4").Allowed)

	assert.True(t, limiter.Allow("5.6.7.8").Allowed)
}

func TestLimiter_UnknownClientsShareOneBucket(t *testing.T) {
	clock := clockwork.NewFakeClock()
	limiter := New(2, time.Minute, clock)

	require.True(t, limiter.Allow("unknown").Allowed)
	require.True(t, limiter.Allow("unknown").Allowed)
	assert.False(t, limiter.Allow("unknown").Allowed)
}

func TestLimiter_SweepDropsIdleClients(t *testing.T) {
	clock := clockwork.NewFakeClock()
	limiter := New(5, time.Minute, clock)

	limiter.Allow("1.2.3.4")
	limiter.Allow("5.6.7.8")
	require.Equal(t, 2, limiter.Clients())

	clock.Advance(2 * time.Minute)
	limiter.Allow("5.6.7.8")

	removed := limiter.Sweep()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, limiter.Clients())
}

func TestLimiter_StartSweeperPrunesOnTick(t *testing.T) {
	clock := clockwork.NewFakeClock()
	limiter := New(5, time.Minute, clock)

	stop := limiter.StartSweeper(5 * time.Minute)
	defer stop()
	require.NoError(t, clock.BlockUntilContext(t.Context(), 1))

	limiter.Allow("1.2.3.4")
	require.Equal(t, 1, limiter.Clients())

	clock.Advance(6 * time.Minute)

	assert.Eventually(t, func() bool {
		return limiter.Clients() == 0
	}, time.Second, 10*time.Millisecond)
}
