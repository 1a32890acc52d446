// Package memory is an in-process db.Store backed by go-cache.
package memory

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/kailas-cloud/zoto/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

const cleanupInterval = 10 * time.Minute

// Store keeps values in process memory. Entries without a TTL never expire.
type Store struct {
	c      *cache.Cache
	closed atomic.Bool
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{c: cache.New(cache.NoExpiration, cleanupInterval)}
}

// Ping always succeeds while the store is open.
func (s *Store) Ping(_ context.Context) error {
	if s.closed.Load() {
		return &db.Error{Op: db.OpPing, Err: db.ErrClosed}
	}
	return nil
}

// Close drops all entries.
func (s *Store) Close() {
	s.closed.Store(true)
	s.c.Flush()
}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	if s.closed.Load() {
		return nil, &db.Error{Op: db.OpGet, Key: key, Err: db.ErrClosed}
	}
	v, ok := s.c.Get(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	data, _ := v.([]byte)
	return append([]byte(nil), data...), nil
}

// Set stores a value without expiration.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.SetWithTTL(ctx, key, value, 0)
}

// SetWithTTL stores a value with an expiration. ttl <= 0 stores without one.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if s.closed.Load() {
		return &db.Error{Op: db.OpSet, Key: key, Err: db.ErrClosed}
	}
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	s.c.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// Del deletes a key.
func (s *Store) Del(_ context.Context, key string) error {
	if s.closed.Load() {
		return &db.Error{Op: db.OpDel, Key: key, Err: db.ErrClosed}
	}
	s.c.Delete(key)
	return nil
}
