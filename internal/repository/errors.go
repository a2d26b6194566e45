// Package repository defines error values shared across the entity
// repositories. Sentinel errors let handlers distinguish failure
// scenarios (missing records, duplicates, invalid input) without
// string matching, while the structured types below carry the detail
// needed for precise rejection messages.
package repository

import (
	"errors"
	"fmt"
	"strings"
)

// Not-found sentinels, one per entity the engine resolves by id.
var (
	ErrSeatNotFound       = errors.New("seat not found")
	ErrSeatTypeNotFound   = errors.New("seat type not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrDeviceNotFound     = errors.New("device not found")
	ErrGuestNotFound      = errors.New("guest not found")
	ErrStaffNotFound      = errors.New("staff not found")
	ErrAllocationNotFound = errors.New("allocation not found")
)

// ErrInvalidRange is returned by seat generation when start > end or
// the span exceeds the batch limit.
var ErrInvalidRange = errors.New("invalid seat number range")

// ErrDuplicateDevice is returned when a device serial already exists
// within the property.
var ErrDuplicateDevice = errors.New("device serial already registered")

// ErrSeatAllocated is returned when a block toggle targets a seat an
// active allocation still references.
var ErrSeatAllocated = errors.New("seat is currently allocated")

// BlockedSeatsError rejects an allocation because one or more of the
// requested seats are blocked. SeatNumbers lists their labels.
type BlockedSeatsError struct {
	SeatNumbers []string
}

func (e *BlockedSeatsError) Error() string {
	return fmt.Sprintf("seats blocked: %s", strings.Join(e.SeatNumbers, ", "))
}

// Holder identifies a guest already holding a contested seat or device.
type Holder struct {
	GuestName  string
	RoomNumber string
}

// ConflictError rejects an allocation because requested seats or
// devices are already committed to non-terminal allocations for the
// date. Keys are the contested ids; values the distinct holders.
type ConflictError struct {
	Seats   map[uint64][]Holder
	Devices map[uint64][]Holder
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("allocation conflict: %d seat(s), %d device(s) already held",
		len(e.Seats), len(e.Devices))
}

// Empty reports whether no conflicts were found.
func (e *ConflictError) Empty() bool {
	return len(e.Seats) == 0 && len(e.Devices) == 0
}

// isDuplicateKey detects a MySQL duplicate-entry violation (error 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
