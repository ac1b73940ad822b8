package model

import "time"

// ResourceKind tags which catalog a bookable resource belongs to.  The
// three kinds share the same booking lifecycle; only the catalog table
// they are read from differs.
type ResourceKind string

const (
    KindHotel     ResourceKind = "HOTEL"     // hotels table, rate per night
    KindTour      ResourceKind = "TOUR"      // tour_packages table, rate per day
    KindTransport ResourceKind = "TRANSPORT" // transport_vehicles table, rate per day
)

// Valid reports whether k names a known resource kind.
func (k ResourceKind) Valid() bool {
    switch k {
    case KindHotel, KindTour, KindTransport:
        return true
    }
    return false
}

// ParseResourceKind maps a URL/JSON token (hotel, tour, transport,
// case-insensitive, singular or plural) to a ResourceKind.  The boolean
// is false when the token is unknown.
func ParseResourceKind(s string) (ResourceKind, bool) {
    switch s {
    case "hotel", "hotels", "HOTEL":
        return KindHotel, true
    case "tour", "tours", "TOUR":
        return KindTour, true
    case "transport", "transports", "TRANSPORT":
        return KindTransport, true
    }
    return "", false
}

// Resource is the read-only view of a catalog row that the booking core
// needs: a unit rate and a capacity.  The catalog itself (names, photos,
// descriptions, destinations) is maintained by the back-office outside
// this service; we only ever read it.
//
// Fields:
//  ID            – primary key in the kind's catalog table.
//  Kind          – which catalog the row came from.
//  Name          – display name, echoed in responses and events.
//  UnitRateCents – price per night (hotels) or per day (tours, transport).
//  Capacity      – maximum party size the resource accommodates.
//  IsActive      – inactive rows are hidden from browsing and booking.
//  CreatedAt     – creation timestamp.
type Resource struct {
    ID            uint64       // <catalog>.id
    Kind          ResourceKind // derived from the table queried
    Name          string       // <catalog>.name
    UnitRateCents int64        // <catalog>.unit_rate_cents
    Capacity      int          // <catalog>.capacity
    IsActive      bool         // <catalog>.is_active
    CreatedAt     time.Time    // <catalog>.created_at
}
