package repository

import (
	"context"
	"database/sql"

	"github.com/smartflags/seat-allocation/internal/model"
)

// DeviceRepo provides data access to the pairing device registry.
type DeviceRepo struct {
	db *sql.DB
}

// NewDeviceRepo constructs a DeviceRepo with the given DB handle.
func NewDeviceRepo(db *sql.DB) *DeviceRepo { return &DeviceRepo{db: db} }

// Create registers a device. A duplicate serial within the property
// (unique index) surfaces as ErrDuplicateDevice.
func (r *DeviceRepo) Create(ctx context.Context, d *model.Device) error {
	const q = `INSERT INTO devices (property_id, name, serial) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, d.PropertyID, d.Name, d.Serial)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateDevice
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// GetByProperty lists a property's devices ordered by name.
func (r *DeviceRepo) GetByProperty(ctx context.Context, propertyID uint64) ([]model.Device, error) {
	const q = `SELECT id, property_id, name, serial, created_at FROM devices
	           WHERE property_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Device
	for rows.Next() {
		var d model.Device
		if err := rows.Scan(&d.ID, &d.PropertyID, &d.Name, &d.Serial, &d.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByIDsTx loads the requested devices of a property inside a
// transaction. The caller must verify that every requested id was
// returned.
func (r *DeviceRepo) GetByIDsTx(ctx context.Context, tx *sql.Tx, propertyID uint64, ids []uint64) ([]model.Device, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := `SELECT id, property_id, name, serial, created_at FROM devices
	      WHERE property_id = ? AND id IN (` + placeholders(len(ids)) + `)`
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, propertyID)
	for _, id := range ids {
		args = append(args, id)
	}
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Device
	for rows.Next() {
		var d model.Device
		if err := rows.Scan(&d.ID, &d.PropertyID, &d.Name, &d.Serial, &d.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// BindSeat statically binds a device to a seat, or clears the binding
// when seatID is nil. The binding lives on the seat row.
func (r *DeviceRepo) BindSeat(ctx context.Context, deviceID uint64, seatID *uint64) error {
	// Clear any previous binding of this device first; a device pairs
	// with at most one seat.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		`UPDATE seats SET device_id = NULL, updated_at = CURRENT_TIMESTAMP WHERE device_id = ?`, deviceID); err != nil {
		return err
	}
	if seatID != nil {
		res, err := tx.ExecContext(ctx,
			`UPDATE seats SET device_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, deviceID, *seatID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrSeatNotFound
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Delete removes a device and clears any seat binding referencing it.
func (r *DeviceRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		`UPDATE seats SET device_id = NULL, updated_at = CURRENT_TIMESTAMP WHERE device_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM devices WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDeviceNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
