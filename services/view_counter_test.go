package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewCounter(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	vc := NewViewCounter(rdb)
	ctx := context.Background()

	n, err := vc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Zero(t, n)

	for i := 1; i <= 3; i++ {
		n, err = vc.Incr(ctx, 7)
		require.NoError(t, err)
		assert.EqualValues(t, i, n)
	}

	n, err = vc.Get(ctx, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.True(t, mr.Exists("blog:post:views:7"))

	require.NoError(t, vc.Forget(ctx, 7))
	assert.False(t, mr.Exists("blog:post:views:7"))
}

func TestViewCounter_Disabled(t *testing.T) {
	vc := NewViewCounter(nil)
	ctx := context.Background()

	n, err := vc.Incr(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = vc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.NoError(t, vc.Forget(ctx, 1))
}
