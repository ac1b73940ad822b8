package booking

import "fmt"

// ComputeTotalCents computes the total price of a booking in integer
// cents: unit rate * reserved days * party size.  Working in cents end
// to end avoids floating-point drift; int64 keeps long stays for large
// parties comfortably in range.  The function has no side effects and
// is deterministic, so the price persisted at creation never has to be
// recomputed.
func ComputeTotalCents(unitRateCents int64, rng DateRange, partySize int) (int64, error) {
    if unitRateCents < 0 {
        return 0, fmt.Errorf("%w: negative unit rate", ErrInvalidInput)
    }
    if partySize < 1 {
        return 0, fmt.Errorf("%w: party size must be at least 1", ErrInvalidInput)
    }
    nights := rng.Nights()
    if nights < 1 {
        return 0, fmt.Errorf("%w: empty date range", ErrInvalidInput)
    }
    return unitRateCents * int64(nights) * int64(partySize), nil
}
