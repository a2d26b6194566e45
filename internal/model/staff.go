package model

import "time"

// Role names recognised by the allocation fan-out. These match the
// role catalog maintained by the external directory service.
const (
	RoleFBManager          = "Food and Beverages Manager"
	RoleFBServer           = "Food and Beverages Server"
	RolePoolBeachAttendant = "Pool And Beach Attendant"
	RoleSupervisor         = "Supervisor"
)

// Staff is a read-only projection of the staff directory. The
// allocation engine looks staff up by id and lists them by role; it
// never mutates these records.
type Staff struct {
	ID         uint64    // staff.id
	PropertyID uint64    // staff.property_id
	Name       string    // staff.name
	RoleName   string    // staff.role_name
	CreatedAt  time.Time // staff.created_at
}
