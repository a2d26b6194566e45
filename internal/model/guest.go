package model

import (
	"fmt"
	"time"
)

// Guest is a stay record on the daily guest list of a property. Room
// numbers are not unique over time; the newest record for a room wins
// when resolving a guest during allocation. The check-in/check-out
// dates are calendar dates without a time component; when both are
// absent the guest is always eligible for allocation.
//
// Fields:
//  ID           – primary key identifier.
//  PropertyID   – property the guest is staying at.
//  RoomNumber   – room the guest occupies.
//  Name         – guest display name.
//  Category     – optional guest category (e.g. "VIP").
//  CheckInDate  – optional first day of the stay.
//  CheckOutDate – optional last day of the stay.
//  CreatedAt    – creation timestamp.
type Guest struct {
	ID           uint64     // guests.id
	PropertyID   uint64     // guests.property_id
	RoomNumber   string     // guests.room_number
	Name         string     // guests.name
	Category     string     // guests.category
	CheckInDate  *time.Time // guests.check_in_date (nullable DATE)
	CheckOutDate *time.Time // guests.check_out_date (nullable DATE)
	CreatedAt    time.Time  // guests.created_at
}

// Eligibility boundaries reported by CheckEligibility.
const (
	BoundaryNotYetCheckedIn   = "NotYetCheckedIn"
	BoundaryAlreadyCheckedOut = "AlreadyCheckedOut"
)

// EligibilityError explains why a guest may not receive an allocation
// right now. Boundary names the stay-window edge that was violated.
type EligibilityError struct {
	Boundary string
	Reason   string
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("guest not eligible: %s", e.Reason)
}

// CheckEligibility decides whether a guest may be allocated seats at
// the given instant. It is a pure function of the guest's stay window,
// the property's check-in/check-out clock times and now. Guests with
// an incomplete stay window are always eligible.
//
// Dates and clock times are compared as fixed-width strings
// ("2006-01-02" and "15:04"), which orders correctly and sidesteps
// time zone arithmetic; now must already be in the property's
// reference zone (UTC here).
func CheckEligibility(g *Guest, cfg Configuration, now time.Time) error {
	if g.CheckInDate == nil || g.CheckOutDate == nil {
		return nil
	}
	day := now.Format("2006-01-02")
	clock := now.Format("15:04")
	checkIn := g.CheckInDate.Format("2006-01-02")
	checkOut := g.CheckOutDate.Format("2006-01-02")

	if day < checkIn {
		return &EligibilityError{
			Boundary: BoundaryNotYetCheckedIn,
			Reason:   fmt.Sprintf("check-in is on %s", checkIn),
		}
	}
	if day == checkIn && clock < cfg.CheckInTime {
		return &EligibilityError{
			Boundary: BoundaryNotYetCheckedIn,
			Reason:   fmt.Sprintf("check-in time is %s", cfg.CheckInTime),
		}
	}
	if day > checkOut {
		return &EligibilityError{
			Boundary: BoundaryAlreadyCheckedOut,
			Reason:   fmt.Sprintf("checked out on %s", checkOut),
		}
	}
	if day == checkOut && clock >= cfg.CheckOutTime {
		return &EligibilityError{
			Boundary: BoundaryAlreadyCheckedOut,
			Reason:   fmt.Sprintf("check-out time was %s", cfg.CheckOutTime),
		}
	}
	return nil
}
