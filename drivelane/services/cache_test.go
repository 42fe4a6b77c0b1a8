package services

import (
	"context"
	"testing"

	"github.com/drivelane/drivelane/drivelane/comparison"
	"github.com/stretchr/testify/require"
)

func TestComparisonCacheLocalRoundTrip(t *testing.T) {
	cache := NewComparisonCache("", "")
	ctx := context.Background()

	_, ok := cache.Get(ctx, "a", "b")
	require.False(t, ok)

	summary := &comparison.Summary{}
	cache.Set(ctx, "a", "b", summary)

	got, ok := cache.Get(ctx, "a", "b")
	require.True(t, ok)
	require.Same(t, summary, got)

	// The reverse ordering is a distinct pair.
	_, ok = cache.Get(ctx, "b", "a")
	require.False(t, ok)
}

func TestComparisonCacheInvalidate(t *testing.T) {
	cache := NewComparisonCache("", "")
	ctx := context.Background()

	cache.Set(ctx, "a", "b", &comparison.Summary{})
	cache.Set(ctx, "c", "d", &comparison.Summary{})

	cache.Invalidate("a")

	_, ok := cache.Get(ctx, "a", "b")
	require.False(t, ok)

	_, ok = cache.Get(ctx, "c", "d")
	require.True(t, ok)
}

func TestContainsRef(t *testing.T) {
	require.True(t, containsRef("cmp:a|b", "a"))
	require.True(t, containsRef("cmp:a|b", "b"))
	require.False(t, containsRef("cmp:a|b", "c"))
	// Prefix of a ref is not a match.
	require.False(t, containsRef("cmp:abc|def", "ab"))
	require.False(t, containsRef("cmp", "a"))
}
