package setup

import (
	"context"
	"time"

	"github.com/erp/storesetup/internal/domain/shared"
)

// ErrLockHeld is returned when another process holds the setup lock
var ErrLockHeld = shared.NewDomainError("LOCK_HELD", "Another setup process is running")

// Lock is a held run lock
type Lock interface {
	// Release gives the lock up; releasing a lock that has expired is not an error
	Release(ctx context.Context) error
}

// Locker hands out the run lock that serialises setup upgrades
type Locker interface {
	// Acquire takes the named lock for at most ttl, or returns ErrLockHeld
	Acquire(ctx context.Context, key string, ttl time.Duration) (Lock, error)

	// Close releases resources held by the locker
	Close() error
}
