package model

import "time"

// SeatStatus enumerates the lifecycle states of a physical seat.
// A seat is FREE when nobody holds it, ALLOCATED while a non-terminal
// allocation references it, and BLOCKED when staff have taken it out
// of service.
type SeatStatus string

const (
	SeatFree      SeatStatus = "FREE"
	SeatAllocated SeatStatus = "ALLOCATED"
	SeatBlocked   SeatStatus = "BLOCKED"
)

// IsValid reports whether s is one of the three recognised seat states.
func (s SeatStatus) IsValid() bool {
	switch s {
	case SeatFree, SeatAllocated, SeatBlocked:
		return true
	default:
		return false
	}
}

func (s SeatStatus) String() string { return string(s) }

// Seat describes a physical seat (sunbed, cabana, chair) at a property.
// Seats belong to exactly one seat type, may belong to one seat group,
// and may have a pairing device statically bound to them.
//
// Fields:
//  ID         – primary key identifier.
//  PropertyID – property that owns the seat.
//  SeatTypeID – catalog type of the seat.
//  GroupID    – optional seat group membership.
//  DeviceID   – optional statically bound pairing device.
//  SeatNumber – human-readable label, e.g. "A-07".
//  Status     – FREE, ALLOCATED or BLOCKED.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Seat struct {
	ID         uint64     // seats.id
	PropertyID uint64     // seats.property_id
	SeatTypeID uint64     // seats.seat_type_id
	GroupID    *uint64    // seats.group_id (nullable)
	DeviceID   *uint64    // seats.device_id (nullable)
	SeatNumber string     // seats.seat_number
	Status     SeatStatus // seats.status
	CreatedAt  time.Time  // seats.created_at
	UpdatedAt  time.Time  // seats.updated_at
}

// SeatType is a per-property catalog entry describing a class of seat
// (e.g. "Sunbed", "Cabana"). Icon holds an optional image reference
// shown by clients.
type SeatType struct {
	ID         uint64    // seat_types.id
	PropertyID uint64    // seat_types.property_id
	Name       string    // seat_types.name
	Icon       string    // seat_types.icon
	CreatedAt  time.Time // seat_types.created_at
}

// SeatGroup is a named set of seats used for staff fan-out and bulk
// operations. Membership is stored on the seats themselves via
// Seat.GroupID; the group row only carries identity and a name.
type SeatGroup struct {
	ID         uint64    // seat_groups.id
	PropertyID uint64    // seat_groups.property_id
	Name       string    // seat_groups.name
	CreatedAt  time.Time // seat_groups.created_at
}

// Device is a pairing device (wristband, flag transmitter) registered
// at a property. Serial is unique within a property. Devices carry no
// status of their own; only seats do.
type Device struct {
	ID         uint64    // devices.id
	PropertyID uint64    // devices.property_id
	Name       string    // devices.name
	Serial     string    // devices.serial
	CreatedAt  time.Time // devices.created_at
}
