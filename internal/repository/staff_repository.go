package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/smartflags/seat-allocation/internal/model"
)

// StaffRepo is the read-only staff directory collaborator. The
// directory service owns these records; the allocation engine only
// resolves staff by id and lists them by role for the creation-time
// fan-out snapshot.
type StaffRepo struct {
	db *sql.DB
}

// NewStaffRepo constructs a StaffRepo with the given DB handle.
func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{db: db} }

// GetByID fetches a staff member, scoped to a property.
func (r *StaffRepo) GetByID(ctx context.Context, id, propertyID uint64) (*model.Staff, error) {
	const q = `SELECT id, property_id, name, role_name, created_at FROM staff
	           WHERE id = ? AND property_id = ?`
	var s model.Staff
	err := r.db.QueryRowContext(ctx, q, id, propertyID).
		Scan(&s.ID, &s.PropertyID, &s.Name, &s.RoleName, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByRole returns every staff member of a property currently
// holding the named role.
func (r *StaffRepo) ListByRole(ctx context.Context, propertyID uint64, roleName string) ([]model.Staff, error) {
	const q = `SELECT id, property_id, name, role_name, created_at FROM staff
	           WHERE property_id = ? AND role_name = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, propertyID, roleName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Staff
	for rows.Next() {
		var s model.Staff
		if err := rows.Scan(&s.ID, &s.PropertyID, &s.Name, &s.RoleName, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
