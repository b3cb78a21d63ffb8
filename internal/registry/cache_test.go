package registry

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingClient struct {
	companies map[string]*Company
	calls     int
}

func (c *countingClient) GetCompany(_ context.Context, staticID string) (*Company, error) {
	c.calls++
	company, ok := c.companies[staticID]
	if !ok {
		return nil, ErrCompanyNotFound
	}
	return company, nil
}

func newCacheFixture(t *testing.T) (*CachedClient, *countingClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	next := &countingClient{companies: map[string]*Company{
		"bank-1": {StaticID: "bank-1", Name: "Gold Bank", IsMember: true, IsFinancialInstitution: true},
	}}
	cached := NewCachedClient(next, rdb, time.Minute, slog.New(slog.DiscardHandler))
	return cached, next, mr
}

func TestCachedClientServesSecondLookupFromCache(t *testing.T) {
	cached, next, _ := newCacheFixture(t)

	first, err := cached.GetCompany(context.Background(), "bank-1")
	require.NoError(t, err)
	second, err := cached.GetCompany(context.Background(), "bank-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls, "second lookup must hit the cache")
}

func TestCachedClientExpiryFallsBackToRegistry(t *testing.T) {
	cached, next, mr := newCacheFixture(t)

	_, err := cached.GetCompany(context.Background(), "bank-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = cached.GetCompany(context.Background(), "bank-1")
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedClientDoesNotCacheMisses(t *testing.T) {
	cached, next, _ := newCacheFixture(t)

	_, err := cached.GetCompany(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	_, err = cached.GetCompany(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
	assert.Equal(t, 2, next.calls)
}

func TestCachedClientOverwritesCorruptEntry(t *testing.T) {
	cached, next, mr := newCacheFixture(t)

	require.NoError(t, mr.Set("registry:company:bank-1", "{not json"))

	company, err := cached.GetCompany(context.Background(), "bank-1")
	require.NoError(t, err)
	assert.Equal(t, "Gold Bank", company.Name)
	assert.Equal(t, 1, next.calls)

	// The corrupt entry was replaced; the next read is served from cache.
	_, err = cached.GetCompany(context.Background(), "bank-1")
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)
}

func TestCachedClientSurvivesRedisOutage(t *testing.T) {
	cached, next, mr := newCacheFixture(t)
	mr.Close()

	company, err := cached.GetCompany(context.Background(), "bank-1")
	require.NoError(t, err)
	assert.Equal(t, "Gold Bank", company.Name)
	assert.Equal(t, 1, next.calls)
}
