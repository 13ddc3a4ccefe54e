package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/rsflow/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// ErrLockAcquire is returned when Redis refuses the lock for a reason other than contention.
var ErrLockAcquire = errors.New("failed to acquire artifact lock")

const unlockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

// Locker implements ports.DistributedLocker using Redis.
// Executors sharing a workspace lock each artifact before building it.
type Locker struct {
	client   *backend.Client
	prefix   string
	interval time.Duration
}

// NewLocker creates a new Redis locker. Keys are prefix + "lock:" + artifact.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client:   client,
		prefix:   prefix,
		interval: 100 * time.Millisecond,
	}
}

// Lock acquires the lock with SET NX PX, polling until ctx is done.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	token := strconv.FormatInt(time.Now().UnixNano(), 36)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrLockAcquire, key, err)
		}
		if ok {
			return func(ctx context.Context) error {
				// Only the holder of token may release the key.
				return l.client.Eval(ctx, unlockScript, []string{lockKey}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
