package booking

import (
    "sync"
    "testing"

    "github.com/tripavia/travel-booking/internal/model"
)

func TestResourceLocks_SameResourceSerializes(t *testing.T) {
    locks := NewResourceLocks()

    const workers = 16
    var inSection, maxInSection int
    var sectionMu sync.Mutex

    var wg sync.WaitGroup
    wg.Add(workers)
    for i := 0; i < workers; i++ {
        go func() {
            defer wg.Done()
            mu := locks.Acquire(model.KindHotel, 7)
            mu.Lock()
            defer mu.Unlock()

            sectionMu.Lock()
            inSection++
            if inSection > maxInSection {
                maxInSection = inSection
            }
            sectionMu.Unlock()

            sectionMu.Lock()
            inSection--
            sectionMu.Unlock()
        }()
    }
    wg.Wait()

    if maxInSection != 1 {
        t.Fatalf("critical section admitted %d goroutines at once", maxInSection)
    }
}

func TestResourceLocks_DistinctResourcesIndependent(t *testing.T) {
    locks := NewResourceLocks()

    a := locks.Acquire(model.KindHotel, 1)
    b := locks.Acquire(model.KindTour, 1)
    c := locks.Acquire(model.KindHotel, 2)
    if a == b || a == c || b == c {
        t.Fatal("expected distinct mutexes for distinct resources")
    }

    // holding one must not block the others
    a.Lock()
    defer a.Unlock()
    b.Lock()
    b.Unlock()
    c.Lock()
    c.Unlock()
}

func TestResourceLocks_StableAcrossCalls(t *testing.T) {
    locks := NewResourceLocks()
    first := locks.Acquire(model.KindTransport, 42)
    second := locks.Acquire(model.KindTransport, 42)
    if first != second {
        t.Fatal("expected the same mutex for repeated Acquire of one resource")
    }
}
