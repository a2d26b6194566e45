package model

import "time"

// Event types recorded in an allocation's log.
const (
	EventCreated      = "Created"
	EventStatusChange = "Status Change"
	EventCallingOn    = "Calling On"
	EventCallingOff   = "Calling Off"
)

// AllocationEvent is one entry of an allocation's append-only log.
// Entries are ordered by id, never edited and never removed. OldValue
// and NewValue are set for status and calling-flag changes and empty
// for the creation entry.
type AllocationEvent struct {
	ID           uint64    // allocation_events.id
	AllocationID uint64    // allocation_events.allocation_id
	EventType    string    // allocation_events.event_type
	OldValue     string    // allocation_events.old_value
	NewValue     string    // allocation_events.new_value
	Description  string    // allocation_events.description
	CreatedAt    time.Time // allocation_events.created_at
}
