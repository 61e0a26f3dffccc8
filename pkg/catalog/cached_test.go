package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCatalog struct {
	calls int
	units []Unit
	err   error
}

func (c *countingCatalog) Units(ctx context.Context) ([]Unit, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.units, nil
}

func TestCachedServesFromCache(t *testing.T) {
	inner := &countingCatalog{units: []Unit{
		{ID: "pu-1", Category: "Kiln", Unit: "Kiln 1"},
	}}
	cached := NewCached(inner, time.Minute)

	first, err := cached.Units(context.Background())
	require.NoError(t, err)
	second, err := cached.Units(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedExpiry(t *testing.T) {
	inner := &countingCatalog{}
	cached := NewCached(inner, 20*time.Millisecond)

	_, err := cached.Units(context.Background())
	require.NoError(t, err)

	// expirable.LRU evicts on a ticker at ttl granularity, so wait a
	// few multiples before asserting the refetch
	require.Eventually(t, func() bool {
		_, err := cached.Units(context.Background())
		return err == nil && inner.calls > 1
	}, time.Second, 10*time.Millisecond)
}

func TestCachedDoesNotCacheErrors(t *testing.T) {
	inner := &countingCatalog{err: assert.AnError}
	cached := NewCached(inner, time.Minute)

	_, err := cached.Units(context.Background())
	require.Error(t, err)

	inner.err = nil
	inner.units = []Unit{{ID: "pu-1", Category: "Packer", Unit: "Packer 1"}}
	units, err := cached.Units(context.Background())
	require.NoError(t, err)
	assert.Len(t, units, 1)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedInvalidate(t *testing.T) {
	inner := &countingCatalog{}
	cached := NewCached(inner, time.Minute)

	_, err := cached.Units(context.Background())
	require.NoError(t, err)
	cached.Invalidate()
	_, err = cached.Units(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}
