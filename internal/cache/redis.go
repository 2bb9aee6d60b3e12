package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// redisStore keeps the payload at <key> and the generation counter at
// <key>:gen. Redis errors degrade to cache misses so the dashboard keeps
// working when Redis is down.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// Redis returns a Store backed by a shared Redis instance, for deployments
// running more than one API replica.
func Redis(client *redis.Client, ttl time.Duration, log *zap.Logger) Store {
	return &redisStore{client: client, ttl: ttl, log: log}
}

func (s *redisStore) generation(ctx context.Context, key string) uint64 {
	val, err := s.client.Get(ctx, key+":gen").Result()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("cache generation lookup failed", zap.String("key", key), zap.Error(err))
		}
		return 0
	}
	gen, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0
	}
	return gen
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, uint64, bool) {
	gen := s.generation(ctx, key)
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, gen, false
	}
	return val, gen, true
}

func (s *redisStore) Put(ctx context.Context, key string, gen uint64, value []byte) bool {
	if s.generation(ctx, key) != gen {
		return false
	}
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		s.log.Warn("cache put failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *redisStore) Invalidate(ctx context.Context, key string) {
	pipe := s.client.Pipeline()
	pipe.Incr(ctx, key+":gen")
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warn("cache invalidate failed", zap.String("key", key), zap.Error(err))
	}
}
