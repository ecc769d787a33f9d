package adapter

import (
	"context"
	"time"
)

// Locker provides per-key mutual exclusion across processes. Job
// transitions take the key "job:<id>" so concurrent transitions on one job
// serialize while other jobs proceed independently.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, err error)
	Unlock(ctx context.Context, key, token string) error
}
