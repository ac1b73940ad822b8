package booking

import (
    "context"
    "errors"
    "fmt"
    "sort"
    "sync"
    "testing"
    "time"

    "github.com/tripavia/travel-booking/internal/model"
)

// fakeStore is an in-memory Store used to exercise the engine without a
// database.  It is safe for concurrent use so the concurrency tests can
// hammer it from multiple goroutines.
type fakeStore struct {
    mu        sync.Mutex
    resources map[string]*model.Resource
    bookings  map[uint64]*model.Booking
    nextID    uint64
}

func newFakeStore() *fakeStore {
    return &fakeStore{
        resources: make(map[string]*model.Resource),
        bookings:  make(map[uint64]*model.Booking),
    }
}

func (s *fakeStore) addResource(r *model.Resource) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.resources[fmt.Sprintf("%s:%d", r.Kind, r.ID)] = r
}

func (s *fakeStore) Resource(_ context.Context, kind model.ResourceKind, id uint64) (*model.Resource, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    r, ok := s.resources[fmt.Sprintf("%s:%d", kind, id)]
    if !ok {
        return nil, ErrResourceNotFound
    }
    cp := *r
    return &cp, nil
}

func (s *fakeStore) OverlapExists(_ context.Context, kind model.ResourceKind, resourceID uint64, rng DateRange) (bool, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    for _, b := range s.bookings {
        if b.ResourceKind != kind || b.ResourceID != resourceID || !b.Status.Blocks() {
            continue
        }
        if rng.Overlaps(DateRange{Start: b.StartDate, End: b.EndDate}) {
            return true, nil
        }
    }
    return false, nil
}

func (s *fakeStore) Insert(_ context.Context, b *model.Booking) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.nextID++
    b.ID = s.nextID
    b.CreatedAt = time.Now().UTC()
    b.UpdatedAt = b.CreatedAt
    cp := *b
    s.bookings[b.ID] = &cp
    return nil
}

func (s *fakeStore) Get(_ context.Context, id uint64) (*model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    b, ok := s.bookings[id]
    if !ok {
        return nil, ErrBookingNotFound
    }
    cp := *b
    return &cp, nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id uint64, from, to model.BookingStatus) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    b, ok := s.bookings[id]
    if !ok || b.Status != from {
        return ErrConflict
    }
    b.Status = to
    b.UpdatedAt = time.Now().UTC()
    return nil
}

func (s *fakeStore) ListByUser(_ context.Context, userID uint64, opt ListOptions) ([]model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    out := make([]model.Booking, 0)
    for _, b := range s.bookings {
        if b.UserID != userID {
            continue
        }
        if opt.Status != nil && b.Status != *opt.Status {
            continue
        }
        out = append(out, *b)
    }
    switch opt.Sort {
    case SortStartDate:
        sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
    case SortPrice:
        sort.Slice(out, func(i, j int) bool { return out[i].TotalPriceCents < out[j].TotalPriceCents })
    default: // SortCreated, newest first
        sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
    }
    return out, nil
}

func (s *fakeStore) ListByResource(_ context.Context, kind model.ResourceKind, resourceID uint64) ([]model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    out := make([]model.Booking, 0)
    for _, b := range s.bookings {
        if b.ResourceKind == kind && b.ResourceID == resourceID {
            out = append(out, *b)
        }
    }
    sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
    return out, nil
}

func (s *fakeStore) count() int {
    s.mu.Lock()
    defer s.mu.Unlock()
    return len(s.bookings)
}

// newTestEngine seeds one resource of each kind and returns the engine
// plus its store for inspection.
func newTestEngine(t *testing.T) (*Engine, *fakeStore) {
    t.Helper()
    st := newFakeStore()
    st.addResource(&model.Resource{ID: 1, Kind: model.KindHotel, Name: "Harbor View", UnitRateCents: 5000, Capacity: 4, IsActive: true})
    st.addResource(&model.Resource{ID: 2, Kind: model.KindTour, Name: "Old Town Walk", UnitRateCents: 2500, Capacity: 12, IsActive: true})
    st.addResource(&model.Resource{ID: 3, Kind: model.KindHotel, Name: "Closed Wing", UnitRateCents: 9000, Capacity: 2, IsActive: false})
    return NewEngine(st), st
}

func req(t *testing.T, userID uint64, kind model.ResourceKind, resID uint64, start, end string, party int) CreateRequest {
    t.Helper()
    return CreateRequest{
        UserID:     userID,
        Kind:       kind,
        ResourceID: resID,
        Range:      mustRange(t, start, end),
        PartySize:  party,
    }
}

func TestCreate_Success(t *testing.T) {
    e, _ := newTestEngine(t)
    b, err := e.Create(context.Background(), req(t, 10, model.KindHotel, 1, "2030-01-05", "2030-01-07", 2))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if b.ID == 0 {
        t.Fatal("expected assigned ID")
    }
    if b.Status != model.StatusPendingPayment {
        t.Fatalf("expected PENDING_PAYMENT, got %s", b.Status)
    }
    // 5000 cents * 2 nights * 2 guests
    if b.TotalPriceCents != 20000 {
        t.Fatalf("expected 20000 cents, got %d", b.TotalPriceCents)
    }
}

func TestCreate_InvalidInput_NothingPersisted(t *testing.T) {
    e, st := newTestEngine(t)
    ctx := context.Background()

    start := mustDate(t, "2030-01-05")
    cases := []struct {
        name string
        req  CreateRequest
    }{
        {"equal dates", CreateRequest{UserID: 10, Kind: model.KindHotel, ResourceID: 1, Range: DateRange{Start: start, End: start}, PartySize: 2}},
        {"inverted dates", CreateRequest{UserID: 10, Kind: model.KindHotel, ResourceID: 1, Range: DateRange{Start: mustDate(t, "2030-01-07"), End: start}, PartySize: 2}},
        {"zero party", req(t, 10, model.KindHotel, 1, "2030-01-05", "2030-01-07", 0)},
        {"negative party", req(t, 10, model.KindHotel, 1, "2030-01-05", "2030-01-07", -3)},
        {"unknown kind", req(t, 10, "CRUISE", 1, "2030-01-05", "2030-01-07", 2)},
        {"past start", req(t, 10, model.KindHotel, 1, "2001-01-05", "2001-01-07", 2)},
        {"missing user", req(t, 0, model.KindHotel, 1, "2030-01-05", "2030-01-07", 2)},
    }
    for _, tc := range cases {
        if _, err := e.Create(ctx, tc.req); !errors.Is(err, ErrInvalidInput) {
            t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
        }
    }
    if n := st.count(); n != 0 {
        t.Fatalf("expected no rows persisted, found %d", n)
    }
}

func TestCreate_ResourceNotFound(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    if _, err := e.Create(ctx, req(t, 10, model.KindHotel, 999, "2030-01-05", "2030-01-07", 2)); !errors.Is(err, ErrResourceNotFound) {
        t.Fatalf("missing resource: expected ErrResourceNotFound, got %v", err)
    }
    // inactive rows are invisible to booking
    if _, err := e.Create(ctx, req(t, 10, model.KindHotel, 3, "2030-01-05", "2030-01-07", 2)); !errors.Is(err, ErrResourceNotFound) {
        t.Fatalf("inactive resource: expected ErrResourceNotFound, got %v", err)
    }
}

func TestCreate_PartyExceedsCapacity(t *testing.T) {
    e, st := newTestEngine(t)
    if _, err := e.Create(context.Background(), req(t, 10, model.KindHotel, 1, "2030-01-05", "2030-01-07", 5)); !errors.Is(err, ErrInvalidInput) {
        t.Fatalf("expected ErrInvalidInput, got %v", err)
    }
    if st.count() != 0 {
        t.Fatal("expected no row persisted")
    }
}

func TestCreate_ExactDuplicateConflicts(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    first, err := e.Create(ctx, req(t, 10, model.KindHotel, 1, "2030-01-05", "2030-01-07", 2))
    if err != nil {
        t.Fatalf("first booking: %v", err)
    }
    if _, err := e.Confirm(ctx, first.ID, 10, model.RoleCustomer); err != nil {
        t.Fatalf("confirm: %v", err)
    }
    if _, err := e.Create(ctx, req(t, 11, model.KindHotel, 1, "2030-01-05", "2030-01-07", 1)); !errors.Is(err, ErrUnavailable) {
        t.Fatalf("duplicate range: expected ErrUnavailable, got %v", err)
    }
}

func TestCreate_PendingBookingAlsoBlocks(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    if _, err := e.Create(ctx, req(t, 10, model.KindHotel, 1, "2030-01-05", "2030-01-07", 2)); err != nil {
        t.Fatalf("first booking: %v", err)
    }
    // still PENDING_PAYMENT, must already block the range
    if _, err := e.Create(ctx, req(t, 11, model.KindHotel, 1, "2030-01-06", "2030-01-08", 1)); !errors.Is(err, ErrUnavailable) {
        t.Fatalf("expected ErrUnavailable, got %v", err)
    }
}

func TestCreate_AdjacentRangesBothSucceed(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    if _, err := e.Create(ctx, req(t, 10, model.KindHotel, 1, "2030-01-05", "2030-01-07", 2)); err != nil {
        t.Fatalf("first booking: %v", err)
    }
    if _, err := e.Create(ctx, req(t, 11, model.KindHotel, 1, "2030-01-07", "2030-01-09", 2)); err != nil {
        t.Fatalf("adjacent booking must succeed, got %v", err)
    }
}

func TestCreate_SameRangeOnOtherResourceSucceeds(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    if _, err := e.Create(ctx, req(t, 10, model.KindHotel, 1, "2030-01-05", "2030-01-07", 2)); err != nil {
        t.Fatalf("hotel booking: %v", err)
    }
    if _, err := e.Create(ctx, req(t, 10, model.KindTour, 2, "2030-01-05", "2030-01-07", 2)); err != nil {
        t.Fatalf("tour booking on same dates must succeed, got %v", err)
    }
}

func TestCancelFreesSlot(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    b, err := e.Create(ctx, req(t, 10, model.KindHotel, 1, "2030-01-05", "2030-01-07", 2))
    if err != nil {
        t.Fatalf("create: %v", err)
    }
    if _, err := e.Cancel(ctx, b.ID, 10, model.RoleCustomer); err != nil {
        t.Fatalf("cancel: %v", err)
    }
    if _, err := e.Create(ctx, req(t, 11, model.KindHotel, 1, "2030-01-05", "2030-01-07", 2)); err != nil {
        t.Fatalf("rebooking a cancelled range must succeed, got %v", err)
    }
}

func TestConfirm_Transitions(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    b, err := e.Create(ctx, req(t, 10, model.KindHotel, 1, "2030-01-05", "2030-01-07", 2))
    if err != nil {
        t.Fatalf("create: %v", err)
    }
    got, err := e.Confirm(ctx, b.ID, 10, model.RoleCustomer)
    if err != nil {
        t.Fatalf("confirm: %v", err)
    }
    if got.Status != model.StatusConfirmed {
        t.Fatalf("expected CONFIRMED, got %s", got.Status)
    }
    // confirming twice is rejected
    if _, err := e.Confirm(ctx, b.ID, 10, model.RoleCustomer); !errors.Is(err, ErrInvalidTransition) {
        t.Fatalf("double confirm: expected ErrInvalidTransition, got %v", err)
    }
}

func TestCancel_RepeatedRejected(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    b, err := e.Create(ctx, req(t, 10, model.KindHotel, 1, "2030-01-05", "2030-01-07", 2))
    if err != nil {
        t.Fatalf("create: %v", err)
    }
    if _, err := e.Cancel(ctx, b.ID, 10, model.RoleCustomer); err != nil {
        t.Fatalf("first cancel: %v", err)
    }
    // CANCELLED is terminal; policy is explicit rejection, every time
    for i := 0; i < 3; i++ {
        if _, err := e.Cancel(ctx, b.ID, 10, model.RoleCustomer); !errors.Is(err, ErrInvalidTransition) {
            t.Fatalf("repeat cancel %d: expected ErrInvalidTransition, got %v", i, err)
        }
    }
    // and a cancelled booking can never be confirmed
    if _, err := e.Confirm(ctx, b.ID, 10, model.RoleCustomer); !errors.Is(err, ErrInvalidTransition) {
        t.Fatalf("confirm after cancel: expected ErrInvalidTransition, got %v", err)
    }
}

func TestTransition_Authorization(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    b, err := e.Create(ctx, req(t, 10, model.KindHotel, 1, "2030-01-05", "2030-01-07", 2))
    if err != nil {
        t.Fatalf("create: %v", err)
    }
    // another customer may not touch it
    if _, err := e.Cancel(ctx, b.ID, 11, model.RoleCustomer); !errors.Is(err, ErrForbidden) {
        t.Fatalf("stranger cancel: expected ErrForbidden, got %v", err)
    }
    // an admin may
    if _, err := e.Cancel(ctx, b.ID, 99, model.RoleAdmin); err != nil {
        t.Fatalf("admin cancel: %v", err)
    }
}

func TestGet(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    if _, err := e.Get(ctx, 404, 10, model.RoleCustomer); !errors.Is(err, ErrBookingNotFound) {
        t.Fatalf("expected ErrBookingNotFound, got %v", err)
    }
    b, err := e.Create(ctx, req(t, 10, model.KindHotel, 1, "2030-01-05", "2030-01-07", 2))
    if err != nil {
        t.Fatalf("create: %v", err)
    }
    if _, err := e.Get(ctx, b.ID, 11, model.RoleCustomer); !errors.Is(err, ErrForbidden) {
        t.Fatalf("stranger get: expected ErrForbidden, got %v", err)
    }
    if _, err := e.Get(ctx, b.ID, 11, model.RoleAdmin); err != nil {
        t.Fatalf("admin get: %v", err)
    }
}

func TestListByUser_FilterAndSort(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()

    first, err := e.Create(ctx, req(t, 10, model.KindHotel, 1, "2030-03-01", "2030-03-05", 2)) // 40000
    if err != nil {
        t.Fatalf("create 1: %v", err)
    }
    second, err := e.Create(ctx, req(t, 10, model.KindTour, 2, "2030-01-05", "2030-01-07", 1)) // 5000
    if err != nil {
        t.Fatalf("create 2: %v", err)
    }
    if _, err := e.Cancel(ctx, second.ID, 10, model.RoleCustomer); err != nil {
        t.Fatalf("cancel: %v", err)
    }

    all, err := e.ListByUser(ctx, 10, ListOptions{})
    if err != nil {
        t.Fatalf("list: %v", err)
    }
    if len(all) != 2 || all[0].ID != second.ID {
        t.Fatalf("default sort: expected newest first, got %+v", all)
    }

    pending := model.StatusPendingPayment
    onlyPending, err := e.ListByUser(ctx, 10, ListOptions{Status: &pending})
    if err != nil {
        t.Fatalf("filtered list: %v", err)
    }
    if len(onlyPending) != 1 || onlyPending[0].ID != first.ID {
        t.Fatalf("status filter: got %+v", onlyPending)
    }

    byStart, err := e.ListByUser(ctx, 10, ListOptions{Sort: SortStartDate})
    if err != nil {
        t.Fatalf("start-date list: %v", err)
    }
    if byStart[0].ID != second.ID {
        t.Fatalf("start_date sort: got %+v", byStart)
    }

    byPrice, err := e.ListByUser(ctx, 10, ListOptions{Sort: SortPrice})
    if err != nil {
        t.Fatalf("price list: %v", err)
    }
    if byPrice[0].ID != second.ID {
        t.Fatalf("price sort: got %+v", byPrice)
    }

    if _, err := e.ListByUser(ctx, 10, ListOptions{Sort: "alphabetical"}); !errors.Is(err, ErrInvalidInput) {
        t.Fatalf("bad sort: expected ErrInvalidInput, got %v", err)
    }
}

func TestCheckAvailability(t *testing.T) {
    e, _ := newTestEngine(t)
    ctx := context.Background()
    rng := mustRange(t, "2030-01-05", "2030-01-07")

    ok, err := e.CheckAvailability(ctx, model.KindHotel, 1, rng)
    if err != nil || !ok {
        t.Fatalf("empty calendar: got %v, %v", ok, err)
    }
    if _, err := e.Create(ctx, req(t, 10, model.KindHotel, 1, "2030-01-05", "2030-01-07", 2)); err != nil {
        t.Fatalf("create: %v", err)
    }
    ok, err = e.CheckAvailability(ctx, model.KindHotel, 1, rng)
    if err != nil || ok {
        t.Fatalf("booked range: got %v, %v", ok, err)
    }
    if _, err := e.CheckAvailability(ctx, model.KindHotel, 999, rng); !errors.Is(err, ErrResourceNotFound) {
        t.Fatalf("missing resource: expected ErrResourceNotFound, got %v", err)
    }
}

func TestCreate_ConcurrentDuplicate_ExactlyOneWins(t *testing.T) {
    e, st := newTestEngine(t)
    ctx := context.Background()

    const attempts = 8
    errs := make([]error, attempts)
    var wg sync.WaitGroup
    wg.Add(attempts)
    for i := 0; i < attempts; i++ {
        go func(i int) {
            defer wg.Done()
            _, errs[i] = e.Create(ctx, req(t, uint64(100+i), model.KindHotel, 1, "2030-01-05", "2030-01-07", 2))
        }(i)
    }
    wg.Wait()

    wins := 0
    for i, err := range errs {
        switch {
        case err == nil:
            wins++
        case errors.Is(err, ErrUnavailable):
        default:
            t.Fatalf("attempt %d: unexpected error %v", i, err)
        }
    }
    if wins != 1 {
        t.Fatalf("expected exactly one winner, got %d", wins)
    }
    if n := st.count(); n != 1 {
        t.Fatalf("expected exactly one persisted row, got %d", n)
    }
}
