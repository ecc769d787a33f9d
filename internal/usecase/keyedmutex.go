package usecase

import "sync"

// keyedMutex hands out one mutex per key, created lazily and reused, so
// work on one job serializes without a global lock. Entries are never
// removed; the population is bounded by the number of live jobs.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) Lock(key string) {
	k.get(key).Lock()
}

func (k *keyedMutex) Unlock(key string) {
	k.get(key).Unlock()
}

func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
