package booking

import (
    "fmt"
    "sync"

    "github.com/tripavia/travel-booking/internal/model"
)

// ResourceLocks hands out one mutex per (kind, resource) pair so that
// booking creation for a single resource is evaluated one request at a
// time.  The availability check followed by the insert is a classic
// check-then-act race; holding the resource's mutex across both steps
// closes it.  Requests for different resources take different mutexes
// and proceed in parallel.
//
// Mutexes are created lazily and never removed: the map grows with the
// number of distinct resources ever booked, a few dozen bytes each.
type ResourceLocks struct {
    mu    sync.Mutex
    locks map[string]*sync.Mutex
}

// NewResourceLocks returns an empty lock table.
func NewResourceLocks() *ResourceLocks {
    return &ResourceLocks{locks: make(map[string]*sync.Mutex)}
}

// Acquire returns the mutex guarding the given resource, creating it on
// first use.  The caller must Lock and Unlock the returned mutex.
func (l *ResourceLocks) Acquire(kind model.ResourceKind, resourceID uint64) *sync.Mutex {
    key := fmt.Sprintf("%s:%d", kind, resourceID)
    l.mu.Lock()
    defer l.mu.Unlock()
    m, ok := l.locks[key]
    if !ok {
        m = &sync.Mutex{}
        l.locks[key] = m
    }
    return m
}
