package play

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTableStore keeps snapshots under game:<id>:snapshot. Every save
// refreshes the TTL, so abandoned tables expire.
type RedisTableStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisTableStore(rdb *redis.Client, ttl time.Duration) *RedisTableStore {
	return &RedisTableStore{rdb: rdb, ttl: ttl}
}

func (s *RedisTableStore) key(gameID string) string {
	return fmt.Sprintf("game:%s:snapshot", gameID)
}

func (s *RedisTableStore) Save(ctx context.Context, gameID string, snap TableSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return s.rdb.Set(ctx, s.key(gameID), b, s.ttl).Err()
}

func (s *RedisTableStore) Load(ctx context.Context, gameID string) (TableSnapshot, bool, error) {
	val, err := s.rdb.Get(ctx, s.key(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return TableSnapshot{}, false, nil
	}
	if err != nil {
		return TableSnapshot{}, false, err
	}

	var snap TableSnapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		return TableSnapshot{}, false, fmt.Errorf("decode snapshot %s: %w", gameID, err)
	}
	return snap, true, nil
}
