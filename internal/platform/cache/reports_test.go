package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReports(t *testing.T) *Reports {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReports(client, time.Minute)
}

type payload struct {
	Value string `json:"value"`
}

func TestFetchJSONPopulatesAndReuses(t *testing.T) {
	reports := newTestReports(t)
	ctx := context.Background()

	key, err := reports.Key(ctx, "reports", "dashboard", "cafe-1")
	require.NoError(t, err)

	loads := 0
	loader := func(ctx context.Context) (interface{}, error) {
		loads++
		return payload{Value: "fresh"}, nil
	}

	var first payload
	require.NoError(t, reports.FetchJSON(ctx, key, &first, loader))
	assert.Equal(t, "fresh", first.Value)
	assert.Equal(t, 1, loads)

	var second payload
	require.NoError(t, reports.FetchJSON(ctx, key, &second, loader))
	assert.Equal(t, "fresh", second.Value)
	assert.Equal(t, 1, loads, "second fetch should hit the cache")
}

func TestBumpInvalidatesOldKeys(t *testing.T) {
	reports := newTestReports(t)
	ctx := context.Background()

	before, err := reports.Key(ctx, "reports", "dashboard", "cafe-1")
	require.NoError(t, err)
	require.NoError(t, reports.Bump(ctx))
	after, err := reports.Key(ctx, "reports", "dashboard", "cafe-1")
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestNilReportsPassesThrough(t *testing.T) {
	var reports *Reports
	ctx := context.Background()

	key, err := reports.Key(ctx, "reports", "menu", "cafe-1")
	require.NoError(t, err)

	var out payload
	require.NoError(t, reports.FetchJSON(ctx, key, &out, func(ctx context.Context) (interface{}, error) {
		return payload{Value: "direct"}, nil
	}))
	assert.Equal(t, "direct", out.Value)
	assert.NoError(t, reports.Bump(ctx))
}
