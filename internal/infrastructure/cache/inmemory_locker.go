package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/erp/storesetup/internal/domain/setup"
	"github.com/erp/storesetup/internal/domain/shared"
	"github.com/google/uuid"
)

type lockEntry struct {
	token     string
	expiresAt time.Time
}

// InMemoryLocker implements setup.Locker with a process-local map.
// It only serialises upgrades started from the same process.
type InMemoryLocker struct {
	mu    sync.Mutex
	locks map[string]lockEntry
}

// NewInMemoryLocker creates a new in-memory locker
func NewInMemoryLocker() *InMemoryLocker {
	return &InMemoryLocker{locks: make(map[string]lockEntry)}
}

// Acquire takes the lock unless an unexpired holder exists
func (l *InMemoryLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (setup.Lock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if e, ok := l.locks[key]; ok && now.Before(e.expiresAt) {
		return nil, shared.NewDomainError(setup.ErrLockHeld.Code,
			fmt.Sprintf("Lock %s is held by another setup process", key))
	}

	token := uuid.NewString()
	l.locks[key] = lockEntry{token: token, expiresAt: now.Add(ttl)}
	return &inMemoryLock{owner: l, key: key, token: token}, nil
}

// Close drops every held lock
func (l *InMemoryLocker) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locks = make(map[string]lockEntry)
	return nil
}

func (l *InMemoryLocker) release(key, token string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.locks[key]; ok && e.token == token {
		delete(l.locks, key)
	}
}

type inMemoryLock struct {
	owner *InMemoryLocker
	key   string
	token string
}

// Release frees the lock if this holder still owns it
func (l *inMemoryLock) Release(ctx context.Context) error {
	l.owner.release(l.key, l.token)
	return nil
}

// Ensure InMemoryLocker implements Locker
var _ setup.Locker = (*InMemoryLocker)(nil)
