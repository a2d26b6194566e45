package model

import "time"

// AllocationStatus is the service lifecycle of an allocation. Values
// are validated by set membership only; any member may be set from any
// other. Complete is terminal: reaching it releases the allocation's
// seats and removes it from conflict checks.
type AllocationStatus string

const (
	StatusAllocated AllocationStatus = "Allocated"
	StatusActive    AllocationStatus = "Active"
	StatusBilling   AllocationStatus = "Billing"
	StatusClear     AllocationStatus = "Clear"
	StatusComplete  AllocationStatus = "Complete"
)

// IsValid reports whether s is a member of the status set.
func (s AllocationStatus) IsValid() bool {
	switch s {
	case StatusAllocated, StatusActive, StatusBilling, StatusClear, StatusComplete:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether s excludes the allocation from conflict
// checks and triggers seat release.
func (s AllocationStatus) IsTerminal() bool { return s == StatusComplete }

func (s AllocationStatus) String() string { return string(s) }

// CallingFlag is the guest-service-request axis, independent of the
// allocation status.
type CallingFlag string

const (
	NonCalling         CallingFlag = "Non Calling"
	Calling            CallingFlag = "Calling"
	CallingForCheckout CallingFlag = "Calling for Checkout"
)

// IsValid reports whether f is a member of the calling-flag set.
func (f CallingFlag) IsValid() bool {
	switch f {
	case NonCalling, Calling, CallingForCheckout:
		return true
	default:
		return false
	}
}

func (f CallingFlag) String() string { return string(f) }

// Allocation binds a guest to a set of seats (and optionally pairing
// devices) for one calendar date. The guest's name, category and room
// are denormalised onto the record so conflict messages and listings
// do not depend on the guest row surviving the daily list reset.
//
// Fields:
//  ID             – primary key identifier.
//  PropertyID     – property the allocation belongs to.
//  GuestID        – guest resolved at creation time.
//  GuestName      – guest name snapshot.
//  GuestCategory  – guest category snapshot (may be empty).
//  RoomNumber     – room number snapshot.
//  FBManagerID    – staff id of the responsible F&B manager.
//  AllocationDate – calendar date the seats are held for.
//  Status         – lifecycle status.
//  CallingFlag    – independent service-request flag.
//  SeatIDs        – seats held by this allocation.
//  DeviceIDs      – pairing devices held by this allocation.
//  Attendants     – staff fan-out snapshot taken at creation.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Allocation struct {
	ID             uint64           // allocations.id
	PropertyID     uint64           // allocations.property_id
	GuestID        uint64           // allocations.guest_id
	GuestName      string           // allocations.guest_name
	GuestCategory  string           // allocations.guest_category
	RoomNumber     string           // allocations.room_number
	FBManagerID    uint64           // allocations.fb_manager_id
	AllocationDate string           // allocations.allocation_date (DATE, "2006-01-02")
	Status         AllocationStatus // allocations.status
	CallingFlag    CallingFlag      // allocations.calling_flag
	SeatIDs        []uint64         // allocation_seats.seat_id
	DeviceIDs      []uint64         // allocation_devices.device_id
	Attendants     []StaffSnapshot  // allocation_staff rows
	CreatedAt      time.Time        // allocations.created_at
	UpdatedAt      time.Time        // allocations.updated_at
}

// StaffSnapshot is one row of the point-in-time staff fan-out stored
// with an allocation. It is never re-synced after creation.
type StaffSnapshot struct {
	StaffID  uint64 // allocation_staff.staff_id
	RoleName string // allocation_staff.role_name
}
