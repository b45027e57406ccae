package lock

import (
	"Vidhub/config"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLockTimeout 在等待时间内未拿到锁
var ErrLockTimeout = errors.New("lock: wait timeout")

// Locker 按 key 互斥, 用于串行化 读-判断-写 流程
type Locker interface {
	// Lock 阻塞直到拿到锁、ctx 结束或等待超时, 返回释放函数
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func ReactionKey(userID, targetID uint64) string {
	return fmt.Sprintf("lock:reaction:%d:%d", userID, targetID)
}

func SubscriptionKey(subscriberID, creatorID uint64) string {
	return fmt.Sprintf("lock:subscription:%d:%d", subscriberID, creatorID)
}

func HistoryKey(userID, videoID uint64) string {
	return fmt.Sprintf("lock:history:%d:%d", userID, videoID)
}

// NewLocker 配置了 Redis 走分布式锁, 否则退回进程内锁
func NewLocker(conf *config.Config, rds *redis.Client) Locker {
	if rds != nil {
		return NewRedisLocker(rds, conf.Lock.TTL(), conf.Lock.Wait())
	}
	return NewLocalLocker(conf.Lock.Wait())
}

func deadline(ctx context.Context, wait time.Duration) (context.Context, context.CancelFunc) {
	if wait <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, wait)
}
