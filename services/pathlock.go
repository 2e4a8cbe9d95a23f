package services

import "sync"

// pathLock serializes multi-step operations on a subtree. Locks are keyed
// by canonical path and reference counted so the map does not grow with
// every path ever touched.
type pathLock struct {
	mu    sync.Mutex
	locks map[string]*pathLockEntry
}

type pathLockEntry struct {
	mu   sync.Mutex
	refs int
}

func newPathLock() *pathLock {
	return &pathLock{locks: make(map[string]*pathLockEntry)}
}

// Lock acquires the lock for a path, blocking while another operation holds
// it. Paths are compared as opaque keys; callers lock the topmost path an
// operation touches.
func (pl *pathLock) Lock(path string) {
	pl.mu.Lock()
	entry, ok := pl.locks[path]
	if !ok {
		entry = &pathLockEntry{}
		pl.locks[path] = entry
	}
	entry.refs++
	pl.mu.Unlock()

	entry.mu.Lock()
}

// Unlock releases the lock for a path, dropping the entry once no
// operation waits on it.
func (pl *pathLock) Unlock(path string) {
	pl.mu.Lock()
	entry, ok := pl.locks[path]
	if ok {
		entry.refs--
		if entry.refs == 0 {
			delete(pl.locks, path)
		}
	}
	pl.mu.Unlock()

	if ok {
		entry.mu.Unlock()
	}
}
