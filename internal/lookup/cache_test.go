package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addressbook/internal/common/database"
	"addressbook/internal/common/logger"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := &database.RedisClient{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}
	t.Cleanup(func() { rdb.Close() })
	return NewCache(rdb, ttl, logger.NewTestLogger(t)), mr
}

func TestCache_MissThenHit(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "1345", "350")
	assert.False(t, ok)

	cache.Set(ctx, "1345", "350", []byte(`{"addresses": []}`))

	body, ok := cache.Get(ctx, "1345", "350")
	require.True(t, ok)
	assert.Equal(t, `{"addresses": []}`, string(body))
}

func TestCache_KeysAreScopedToSearchTerms(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "1345", "350", []byte(`a`))

	_, ok := cache.Get(ctx, "1345", "351")
	assert.False(t, ok)
	_, ok = cache.Get(ctx, "9999", "350")
	assert.False(t, ok)
}

func TestCache_EntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "1345", "350", []byte(`a`))
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, "1345", "350")
	assert.False(t, ok)
}

func TestSearch_ServedFromCacheSkipsHTTP(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"addresses": [{"street": "Main", "city": "X", "postcode": "1345"}]}`))
	}))
	t.Cleanup(server.Close)

	cache, _ := newTestCache(t, time.Minute)
	client := NewClient(server.URL, 5*time.Second, cache, logger.NewTestLogger(t))
	ctx := context.Background()

	first, err := client.Search(ctx, "1345", "350")
	require.NoError(t, err)
	second, err := client.Search(ctx, "1345", "350")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestSearch_FailedResponsesAreNotCached(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	cache, _ := newTestCache(t, time.Minute)
	client := NewClient(server.URL, 5*time.Second, cache, logger.NewTestLogger(t))
	ctx := context.Background()

	_, err := client.Search(ctx, "1345", "350")
	require.Error(t, err)
	_, err = client.Search(ctx, "1345", "350")
	require.Error(t, err)

	assert.Equal(t, 2, calls)
}
