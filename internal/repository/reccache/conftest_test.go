package reccache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/zoto/internal/db"
	"github.com/kailas-cloud/zoto/internal/domain/search/request"
	"github.com/kailas-cloud/zoto/internal/domain/search/result"
)

type mockRecommender struct {
	restaurants []result.Restaurant
	err         error
	calls       int
}

func (m *mockRecommender) Fetch(_ context.Context, _ request.Request) ([]result.Restaurant, error) {
	m.calls++
	return m.restaurants, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedRecommender(t *testing.T, inner *mockRecommender) (*CachedRecommender, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cr := New(inner, ms, time.Hour, nil, zap.NewNop())
	return cr, ms
}
