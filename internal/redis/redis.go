package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// Markers is the Redis-backed de-dup marker store for the notifier. A marker
// read failure reports "not seen": a duplicate reminder beats a missed one.
type Markers struct{}

func (Markers) Seen(ctx context.Context, key string) bool {
	n, err := Rdb.Exists(ctx, key).Result()
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("marker lookup failed")
		return false
	}
	return n > 0
}

func (Markers) Mark(ctx context.Context, key string, expiration time.Duration) error {
	if err := Rdb.Set(ctx, key, 1, expiration).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to set marker")
		return err
	}
	return nil
}
