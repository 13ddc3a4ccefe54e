package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/rsflow/pkg/ports"
)

// lockEntry holds the semaphore and the reference count of one key.
type lockEntry struct {
	sem  chan struct{}
	refs int
}

// Locker implements ports.DistributedLocker within a single process.
// Entries are reference counted and removed once nobody holds or waits for them.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

// NewLocker creates a new in-process locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*lockEntry)}
}

func (l *Locker) acquire(key string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[key]
	if !ok {
		entry = &lockEntry{sem: make(chan struct{}, 1)}
		l.locks[key] = entry
	}
	entry.refs++
	return entry
}

func (l *Locker) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[key]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, key)
	}
}

// Lock blocks until key is free or ctx is done. The ttl is ignored: a
// process-local holder cannot vanish without releasing.
func (l *Locker) Lock(ctx context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	entry := l.acquire(key)

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-entry.sem
			l.release(key)
		})
		return nil
	}, nil
}

// held reports the number of keys currently tracked.
func (l *Locker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
