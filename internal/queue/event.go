// Package queue defines message payloads exchanged over the message broker.
package queue

// AllocationCreatedEvent is published when a seat allocation is committed.
// It carries enough information for downstream consumers to log or notify
// without querying the primary database.
type AllocationCreatedEvent struct {
	AllocationID uint64   `json:"allocation_id"`
	PropertyID   uint64   `json:"property_id"`
	GuestID      uint64   `json:"guest_id"`
	GuestName    string   `json:"guest_name"`
	RoomNumber   string   `json:"room_number"`
	Date         string   `json:"date"`
	SeatNumbers  []string `json:"seats"`
	DeviceCount  int      `json:"device_count"`
	CreatedBy    string   `json:"created_by"`
	CreatedAt    string   `json:"created_at"`
}

// GuestCallingEvent is published when an allocation's calling flag changes,
// so attendants can be alerted in near real time.
type GuestCallingEvent struct {
	AllocationID uint64 `json:"allocation_id"`
	PropertyID   uint64 `json:"property_id"`
	GuestName    string `json:"guest_name"`
	RoomNumber   string `json:"room_number"`
	SeatNumbers  string `json:"seats"`
	Flag         string `json:"flag"`
	ChangedAt    string `json:"changed_at"`
}
