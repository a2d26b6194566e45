package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/smartflags/seat-allocation/internal/model"
)

// AllocationRepo provides data access for allocations and their child
// tables (seats, devices, staff snapshot, event log). Creation and
// lifecycle transitions are check-then-act sequences, so the mutating
// methods take an explicit *sql.Tx; the caller owns commit/rollback.
type AllocationRepo struct {
	db *sql.DB
}

// NewAllocationRepo returns a new AllocationRepo bound to the given database.
func NewAllocationRepo(db *sql.DB) *AllocationRepo { return &AllocationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *AllocationRepo) DB() *sql.DB { return r.db }

// CreateTx inserts the allocation row within an existing transaction
// and populates the generated ID and timestamps. Child rows (seats,
// devices, staff, events) are added by the companion Tx methods.
func (r *AllocationRepo) CreateTx(ctx context.Context, tx *sql.Tx, a *model.Allocation) error {
	const q = `INSERT INTO allocations
	           (property_id, guest_id, guest_name, guest_category, room_number,
	            fb_manager_id, allocation_date, status, calling_flag)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var category interface{}
	if a.GuestCategory != "" {
		category = a.GuestCategory
	}
	res, err := tx.ExecContext(ctx, q, a.PropertyID, a.GuestID, a.GuestName, category,
		a.RoomNumber, a.FBManagerID, a.AllocationDate, a.Status, a.CallingFlag)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	// Query back to populate DB-side timestamps.
	const sel = `SELECT created_at, updated_at FROM allocations WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, a.ID).Scan(&a.CreatedAt, &a.UpdatedAt)
}

// AddSeatsTx records the allocation's seat set in a single statement.
func (r *AllocationRepo) AddSeatsTx(ctx context.Context, tx *sql.Tx, allocationID uint64, seatIDs []uint64) error {
	if len(seatIDs) == 0 {
		return nil
	}
	query := `INSERT INTO allocation_seats (allocation_id, seat_id) VALUES `
	args := make([]interface{}, 0, len(seatIDs)*2)
	for i, sid := range seatIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, allocationID, sid)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// AddDevicesTx records the allocation's device set in a single statement.
func (r *AllocationRepo) AddDevicesTx(ctx context.Context, tx *sql.Tx, allocationID uint64, deviceIDs []uint64) error {
	if len(deviceIDs) == 0 {
		return nil
	}
	query := `INSERT INTO allocation_devices (allocation_id, device_id) VALUES `
	args := make([]interface{}, 0, len(deviceIDs)*2)
	for i, did := range deviceIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, allocationID, did)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// AddStaffTx stores the point-in-time staff fan-out snapshot. The
// snapshot is never re-synced after creation.
func (r *AllocationRepo) AddStaffTx(ctx context.Context, tx *sql.Tx, allocationID uint64, staff []model.StaffSnapshot) error {
	if len(staff) == 0 {
		return nil
	}
	query := `INSERT INTO allocation_staff (allocation_id, staff_id, role_name) VALUES `
	args := make([]interface{}, 0, len(staff)*3)
	for i, s := range staff {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, allocationID, s.StaffID, s.RoleName)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// AppendEventTx appends one entry to the allocation's event log. The
// log is append-only; nothing ever updates or deletes these rows.
func (r *AllocationRepo) AppendEventTx(ctx context.Context, tx *sql.Tx, ev *model.AllocationEvent) error {
	const q = `INSERT INTO allocation_events (allocation_id, event_type, old_value, new_value, description)
	           VALUES (?, ?, ?, ?, ?)`
	var oldVal, newVal interface{}
	if ev.OldValue != "" {
		oldVal = ev.OldValue
	}
	if ev.NewValue != "" {
		newVal = ev.NewValue
	}
	res, err := tx.ExecContext(ctx, q, ev.AllocationID, ev.EventType, oldVal, newVal, ev.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	return nil
}

// FindConflictsTx computes which of the requested seats and devices
// are already committed to a non-terminal allocation for the property
// and date, and by whom. The reads lock matching child rows
// (FOR UPDATE) so a concurrent create on overlapping ids serializes
// against this transaction instead of double-booking.
//
// A nil return means no conflict.
func (r *AllocationRepo) FindConflictsTx(ctx context.Context, tx *sql.Tx, propertyID uint64, date string, seatIDs, deviceIDs []uint64) (*ConflictError, error) {
	conflict := &ConflictError{
		Seats:   make(map[uint64][]Holder),
		Devices: make(map[uint64][]Holder),
	}
	if err := r.findHeldTx(ctx, tx, "allocation_seats", "seat_id", propertyID, date, seatIDs, conflict.Seats); err != nil {
		return nil, err
	}
	if err := r.findHeldTx(ctx, tx, "allocation_devices", "device_id", propertyID, date, deviceIDs, conflict.Devices); err != nil {
		return nil, err
	}
	if conflict.Empty() {
		return nil, nil
	}
	return conflict, nil
}

func (r *AllocationRepo) findHeldTx(ctx context.Context, tx *sql.Tx, table, column string, propertyID uint64, date string, ids []uint64, out map[uint64][]Holder) error {
	if len(ids) == 0 {
		return nil
	}
	q := `SELECT c.` + column + `, a.guest_name, a.room_number
	      FROM ` + table + ` c
	      JOIN allocations a ON a.id = c.allocation_id
	      WHERE a.property_id = ? AND a.allocation_date = ? AND a.status <> ?
	        AND c.` + column + ` IN (` + placeholders(len(ids)) + `)
	      FOR UPDATE`
	args := make([]interface{}, 0, len(ids)+3)
	args = append(args, propertyID, date, model.StatusComplete)
	for _, id := range ids {
		args = append(args, id)
	}
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id uint64
		var h Holder
		if err := rows.Scan(&id, &h.GuestName, &h.RoomNumber); err != nil {
			return err
		}
		if !containsHolder(out[id], h) {
			out[id] = append(out[id], h)
		}
	}
	return rows.Err()
}

func containsHolder(list []Holder, h Holder) bool {
	for _, existing := range list {
		if existing == h {
			return true
		}
	}
	return false
}

const allocationColumns = `id, property_id, guest_id, guest_name, guest_category, room_number,
	fb_manager_id, allocation_date, status, calling_flag, created_at, updated_at`

func scanAllocation(row interface{ Scan(...interface{}) error }) (model.Allocation, error) {
	var a model.Allocation
	var category sql.NullString
	var date time.Time
	err := row.Scan(&a.ID, &a.PropertyID, &a.GuestID, &a.GuestName, &category, &a.RoomNumber,
		&a.FBManagerID, &date, &a.Status, &a.CallingFlag, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return a, err
	}
	if category.Valid {
		a.GuestCategory = category.String
	}
	a.AllocationDate = date.Format("2006-01-02")
	return a, nil
}

// GetByID loads an allocation with its seat set, device set and staff
// snapshot. Events are loaded separately via ListEvents.
func (r *AllocationRepo) GetByID(ctx context.Context, id uint64) (*model.Allocation, error) {
	const q = `SELECT ` + allocationColumns + ` FROM allocations WHERE id = ?`
	a, err := scanAllocation(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAllocationNotFound
		}
		return nil, err
	}
	if a.SeatIDs, err = r.childIDs(ctx, "allocation_seats", "seat_id", a.ID); err != nil {
		return nil, err
	}
	if a.DeviceIDs, err = r.childIDs(ctx, "allocation_devices", "device_id", a.ID); err != nil {
		return nil, err
	}
	const staffQ = `SELECT staff_id, role_name FROM allocation_staff WHERE allocation_id = ? ORDER BY role_name, staff_id`
	rows, err := r.db.QueryContext(ctx, staffQ, a.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s model.StaffSnapshot
		if err := rows.Scan(&s.StaffID, &s.RoleName); err != nil {
			return nil, err
		}
		a.Attendants = append(a.Attendants, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AllocationRepo) childIDs(ctx context.Context, table, column string, allocationID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+column+` FROM `+table+` WHERE allocation_id = ? ORDER BY `+column, allocationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetForUpdateTx loads the allocation base row with the row locked,
// for lifecycle transitions and deletion.
func (r *AllocationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Allocation, error) {
	const q = `SELECT ` + allocationColumns + ` FROM allocations WHERE id = ? FOR UPDATE`
	a, err := scanAllocation(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAllocationNotFound
		}
		return nil, err
	}
	return &a, nil
}

// SeatIDsTx returns the allocation's seat ids within a transaction,
// used when a transition or deletion must release seats.
func (r *AllocationRepo) SeatIDsTx(ctx context.Context, tx *sql.Tx, allocationID uint64) ([]uint64, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT seat_id FROM allocation_seats WHERE allocation_id = ?`, allocationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListByProperty returns a property's allocations newest first. When
// includeComplete is false, terminal allocations are filtered out.
// Seat ids are populated for every returned allocation in one query.
func (r *AllocationRepo) ListByProperty(ctx context.Context, propertyID uint64, includeComplete bool) ([]model.Allocation, error) {
	q := `SELECT ` + allocationColumns + ` FROM allocations WHERE property_id = ?`
	args := []interface{}{propertyID}
	if !includeComplete {
		q += ` AND status <> ?`
		args = append(args, model.StatusComplete)
	}
	q += ` ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]model.Allocation, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		index[a.ID] = len(list)
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}
	// Populate seat ids for all allocations in a single query.
	ids := make([]interface{}, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	seatQ := `SELECT allocation_id, seat_id FROM allocation_seats
	          WHERE allocation_id IN (` + placeholders(len(ids)) + `) ORDER BY allocation_id, seat_id`
	srows, err := r.db.QueryContext(ctx, seatQ, ids...)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var aid, sid uint64
		if err := srows.Scan(&aid, &sid); err != nil {
			return nil, err
		}
		if i, ok := index[aid]; ok {
			list[i].SeatIDs = append(list[i].SeatIDs, sid)
		}
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateStatusTx sets the allocation's status within a transaction.
func (r *AllocationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.AllocationStatus) error {
	const q = `UPDATE allocations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, status, id)
	return err
}

// UpdateCallingFlagTx sets the allocation's calling flag within a transaction.
func (r *AllocationRepo) UpdateCallingFlagTx(ctx context.Context, tx *sql.Tx, id uint64, flag model.CallingFlag) error {
	const q = `UPDATE allocations SET calling_flag = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, flag, id)
	return err
}

// DeleteTx removes the allocation and its child rows. Seat release is
// the caller's responsibility (SeatRepo.ReleaseTx in the same
// transaction) so the two effects commit together.
func (r *AllocationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	for _, table := range []string{"allocation_seats", "allocation_devices", "allocation_staff", "allocation_events"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE allocation_id = ?`, id); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM allocations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAllocationNotFound
	}
	return nil
}

// AllocatedIDs returns the seat and device ids held by non-terminal
// allocations of a property on a date.
func (r *AllocationRepo) AllocatedIDs(ctx context.Context, propertyID uint64, date string) (seatIDs, deviceIDs []uint64, err error) {
	seatIDs, err = r.heldIDs(ctx, "allocation_seats", "seat_id", propertyID, date)
	if err != nil {
		return nil, nil, err
	}
	deviceIDs, err = r.heldIDs(ctx, "allocation_devices", "device_id", propertyID, date)
	if err != nil {
		return nil, nil, err
	}
	return seatIDs, deviceIDs, nil
}

func (r *AllocationRepo) heldIDs(ctx context.Context, table, column string, propertyID uint64, date string) ([]uint64, error) {
	q := `SELECT DISTINCT c.` + column + `
	      FROM ` + table + ` c
	      JOIN allocations a ON a.id = c.allocation_id
	      WHERE a.property_id = ? AND a.allocation_date = ? AND a.status <> ?
	      ORDER BY c.` + column
	rows, err := r.db.QueryContext(ctx, q, propertyID, date, model.StatusComplete)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListEvents returns the allocation's event log in append order.
func (r *AllocationRepo) ListEvents(ctx context.Context, allocationID uint64) ([]model.AllocationEvent, error) {
	const q = `SELECT id, allocation_id, event_type, old_value, new_value, description, created_at
	           FROM allocation_events WHERE allocation_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, allocationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]model.AllocationEvent, 0)
	for rows.Next() {
		var ev model.AllocationEvent
		var oldVal, newVal sql.NullString
		if err := rows.Scan(&ev.ID, &ev.AllocationID, &ev.EventType, &oldVal, &newVal,
			&ev.Description, &ev.CreatedAt); err != nil {
			return nil, err
		}
		ev.OldValue = oldVal.String
		ev.NewValue = newVal.String
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
