package revision

import (
	"sync"
	"time"

	"partstore-backend/internal/models"
)

// The tracker has its own small lock on purpose: pollers hitting Current
// must never queue behind a long store mutation or a snapshot.
var (
	mu      sync.RWMutex
	current = time.Now().UTC().Format(models.TimeLayout)
)

// Bump moves the change version to now. Called exactly once per logical
// mutation, after the mutation is applied. Bumps within the same second
// coalesce, which only ever costs a poller one extra full refetch.
func Bump() {
	now := time.Now().UTC().Format(models.TimeLayout)
	mu.Lock()
	// never go backwards, even under clock skew
	if now > current {
		current = now
	}
	mu.Unlock()
}

// Current is the staleness signal clients poll to decide whether to
// refetch the record set.
func Current() string {
	mu.RLock()
	defer mu.RUnlock()
	return current
}
