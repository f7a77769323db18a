package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUsageDate(t *testing.T) {
	t.Run("zone boundary check", func(t *testing.T) {
		moment := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
		require.Equal(t, "2026-03-01", UsageDate(moment, nil))
		plus3 := time.FixedZone("MSK", 3*60*60)
		require.Equal(t, "2026-03-02", UsageDate(moment, plus3))
	})
}

func TestWords(t *testing.T) {
	t.Run("punctuation check", func(t *testing.T) {
		require.Equal(t, []string{"help", "me", "write", "a", "blog", "post"}, Words("Help me, write a blog-post!"))
	})
	t.Run("empty check", func(t *testing.T) {
		require.Empty(t, Words("  ...  "))
	})
}

func TestIsContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	require.False(t, IsContextDone(ctx))
	cancel()
	require.True(t, IsContextDone(ctx))
}

func TestIsValidEmail(t *testing.T) {
	require.True(t, IsValidEmail("user@example.com"))
	require.False(t, IsValidEmail("User <user@example.com>"))
	require.False(t, IsValidEmail("not-an-email"))
}
