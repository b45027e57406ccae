package lock

import (
	"context"
	"sync"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// slot refs 只在 cmap 分片锁内修改
type slot struct {
	sem  chan struct{}
	refs int
}

// LocalLocker 单进程部署使用, 每个 key 一个容量为 1 的信号量, 无人持有或等待时移除
type LocalLocker struct {
	slots cmap.ConcurrentMap[string, *slot]
	Wait  time.Duration
}

func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{
		slots: cmap.New[*slot](),
		Wait:  wait,
	}
}

func (l *LocalLocker) acquire(key string) *slot {
	return l.slots.Upsert(key, nil, func(exist bool, old, _ *slot) *slot {
		if exist {
			old.refs++
			return old
		}
		return &slot{sem: make(chan struct{}, 1), refs: 1}
	})
}

func (l *LocalLocker) release(key string) {
	l.slots.RemoveCb(key, func(_ string, s *slot, exists bool) bool {
		if !exists {
			return false
		}
		s.refs--
		return s.refs == 0
	})
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	s := l.acquire(key)
	waitCtx, cancel := deadline(ctx, l.Wait)
	defer cancel()

	select {
	case s.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.sem
				l.release(key)
			})
		}, nil
	case <-waitCtx.Done():
		l.release(key)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ErrLockTimeout
	}
}
