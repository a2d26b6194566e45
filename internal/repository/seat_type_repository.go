package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/smartflags/seat-allocation/internal/model"
)

// SeatTypeRepo provides CRUD access to the seat type catalog.
type SeatTypeRepo struct {
	db *sql.DB
}

// NewSeatTypeRepo constructs a SeatTypeRepo with the given DB handle.
func NewSeatTypeRepo(db *sql.DB) *SeatTypeRepo { return &SeatTypeRepo{db: db} }

// Create inserts a seat type and populates its ID.
func (r *SeatTypeRepo) Create(ctx context.Context, st *model.SeatType) error {
	const q = `INSERT INTO seat_types (property_id, name, icon) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, st.PropertyID, st.Name, st.Icon)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	st.ID = uint64(id)
	return nil
}

// GetByID fetches a seat type by id.
func (r *SeatTypeRepo) GetByID(ctx context.Context, id uint64) (*model.SeatType, error) {
	const q = `SELECT id, property_id, name, icon, created_at FROM seat_types WHERE id = ?`
	var st model.SeatType
	err := r.db.QueryRowContext(ctx, q, id).Scan(&st.ID, &st.PropertyID, &st.Name, &st.Icon, &st.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatTypeNotFound
		}
		return nil, err
	}
	return &st, nil
}

// GetByProperty lists the seat types of a property ordered by name.
func (r *SeatTypeRepo) GetByProperty(ctx context.Context, propertyID uint64) ([]model.SeatType, error) {
	const q = `SELECT id, property_id, name, icon, created_at FROM seat_types
	           WHERE property_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.SeatType
	for rows.Next() {
		var st model.SeatType
		if err := rows.Scan(&st.ID, &st.PropertyID, &st.Name, &st.Icon, &st.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a seat type by id.
func (r *SeatTypeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM seat_types WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatTypeNotFound
	}
	return nil
}
