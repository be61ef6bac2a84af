package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_AllowsUpToLimit(t *testing.T) {
	l := NewMemoryLimiter()
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		ok, err := l.Allow(ctx, 1, 60)
		require.NoError(t, err)
		require.True(t, ok, "request %d should be admitted", i+1)
	}

	ok, err := l.Allow(ctx, 1, 60)
	require.NoError(t, err)
	require.False(t, ok, "61st request in the same minute must be rejected")
}

func TestMemoryLimiter_WindowReset(t *testing.T) {
	now := time.Date(2025, 11, 18, 23, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter()
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, _ := l.Allow(ctx, 7, 2)
		require.True(t, ok)
	}
	ok, _ := l.Allow(ctx, 7, 2)
	require.False(t, ok)

	// next minute: counter resets
	now = now.Add(time.Minute)
	ok, _ = l.Allow(ctx, 7, 2)
	require.True(t, ok)
}

func TestMemoryLimiter_WindowAlignsToWallClockMinute(t *testing.T) {
	now := time.Date(2025, 11, 18, 23, 0, 59, 0, time.UTC)
	l := NewMemoryLimiter()
	l.now = func() time.Time { return now }
	ctx := context.Background()

	ok, _ := l.Allow(ctx, 4, 1)
	require.True(t, ok)
	ok, _ = l.Allow(ctx, 4, 1)
	require.False(t, ok)

	// two seconds later but across the minute boundary: fresh window
	now = time.Date(2025, 11, 18, 23, 1, 1, 0, time.UTC)
	ok, _ = l.Allow(ctx, 4, 1)
	require.True(t, ok)
}

func TestMemoryLimiter_RejectedDoesNotConsumeQuota(t *testing.T) {
	l := NewMemoryLimiter()
	ctx := context.Background()

	ok, _ := l.Allow(ctx, 3, 1)
	require.True(t, ok)

	// hammer rejected requests, then reset and confirm a full window is available
	for i := 0; i < 10; i++ {
		ok, _ = l.Allow(ctx, 3, 1)
		require.False(t, ok)
	}
}

func TestMemoryLimiter_ZeroLimitMeansUnlimited(t *testing.T) {
	l := NewMemoryLimiter()
	for i := 0; i < 1000; i++ {
		ok, err := l.Allow(context.Background(), 9, 0)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestMemoryLimiter_PerSellerIsolation(t *testing.T) {
	l := NewMemoryLimiter()
	ctx := context.Background()

	ok, _ := l.Allow(ctx, 1, 1)
	require.True(t, ok)
	ok, _ = l.Allow(ctx, 1, 1)
	require.False(t, ok)

	// a different seller has its own window
	ok, _ = l.Allow(ctx, 2, 1)
	require.True(t, ok)
}
