package redis

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/zoto/internal/db"
)

// Get retrieves a value by key. With LocalCacheTTL set, repeated reads are
// served from the client-side cache until the server invalidates the key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	k := s.key(key)

	var res rueidis.RedisResult
	if s.localTTL > 0 {
		res = s.client.DoCache(ctx, s.b().Get().Key(k).Cache(), s.localTTL)
	} else {
		res = s.do(ctx, s.b().Get().Key(k).Build())
	}

	data, err := res.AsBytes()
	switch {
	case rueidis.IsRedisNil(err):
		return nil, db.ErrKeyNotFound
	case err != nil:
		return nil, &db.Error{Op: db.OpGet, Key: k, Err: err}
	}
	return data, nil
}

// Set stores a value at the given key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.SetWithTTL(ctx, key, value, 0)
}

// SetWithTTL stores a value with an expiration. ttl <= 0 stores without one.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	k := s.key(key)
	set := s.b().Set().Key(k).Value(rueidis.BinaryString(value))

	var cmd rueidis.Completed
	if ttl > 0 {
		cmd = set.Ex(ttl).Build()
	} else {
		cmd = set.Build()
	}

	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Key: k, Err: err}
	}
	return nil
}

// Del deletes a key. Deleting a missing key is not an error.
func (s *Store) Del(ctx context.Context, key string) error {
	k := s.key(key)
	if err := s.do(ctx, s.b().Del().Key(k).Build()).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Key: k, Err: err}
	}
	return nil
}
