package lock

import (
	"Vidhub/pkg/log"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// 只删除自己持有的锁
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

const retryInterval = 20 * time.Millisecond

type RedisLocker struct {
	Redis *redis.Client
	TTL   time.Duration
	Wait  time.Duration
}

func NewRedisLocker(rds *redis.Client, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{Redis: rds, TTL: ttl, Wait: wait}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	waitCtx, cancel := deadline(ctx, l.Wait)
	defer cancel()

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.Redis.SetNX(waitCtx, key, token, l.TTL).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			return nil, err
		}
		if ok {
			return func() {
				// 请求 ctx 可能已取消, 释放用独立 ctx
				relCtx, relCancel := context.WithTimeout(context.Background(), time.Second)
				defer relCancel()
				if err := releaseScript.Run(relCtx, l.Redis, []string{key}, token).Err(); err != nil {
					log.L.Warn("release lock", zap.String("key", key), zap.Error(err))
				}
			}, nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, ErrLockTimeout
		case <-ticker.C:
		}
	}
}
