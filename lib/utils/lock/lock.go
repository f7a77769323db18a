package lock

import (
	"context"
	"sync"
	"time"
)

const retryPeriod = 5 * time.Millisecond

// KeyedLock взаимное исключение по ключу без общего мьютекса на все ключи
type KeyedLock struct {
	lockMap sync.Map
}

func New() *KeyedLock {
	return &KeyedLock{}
}

// WithDelay выполняет safeCode под блокировкой key.
// Если блокировку не удалось получить за wait или контекст завершён, safeCode не вызывается и success = false.
func (l *KeyedLock) WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	isTimeout := time.After(wait)
	for {
		if _, loaded := l.lockMap.LoadOrStore(key, true); !loaded {
			break
		}
		select {
		case <-isTimeout:
			return false, nil
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(retryPeriod):
		}
	}
	defer l.lockMap.Delete(key)
	return true, safeCode()
}
