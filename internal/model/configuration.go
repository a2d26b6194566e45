package model

// Default clock times applied when a property has no configuration row.
const (
	DefaultCheckInTime  = "14:00"
	DefaultCheckOutTime = "11:00"
)

// Configuration holds the per-property check-in/check-out clock times
// consulted by the eligibility check. Times are local 24-hour "HH:MM"
// strings. One row exists per property at most; DefaultConfiguration
// supplies the fallback.
type Configuration struct {
	PropertyID   uint64 // configurations.property_id
	CheckInTime  string // configurations.check_in_time
	CheckOutTime string // configurations.check_out_time
}

// DefaultConfiguration returns the documented defaults for a property
// without a stored configuration.
func DefaultConfiguration(propertyID uint64) Configuration {
	return Configuration{
		PropertyID:   propertyID,
		CheckInTime:  DefaultCheckInTime,
		CheckOutTime: DefaultCheckOutTime,
	}
}
