package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/smartflags/seat-allocation/internal/model"
)

// GuestRepo provides data access to the daily guest list.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo constructs a GuestRepo with the given DB handle.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

const guestColumns = `id, property_id, room_number, name, category, check_in_date, check_out_date, created_at`

func scanGuest(row interface{ Scan(...interface{}) error }) (model.Guest, error) {
	var g model.Guest
	var category sql.NullString
	err := row.Scan(&g.ID, &g.PropertyID, &g.RoomNumber, &g.Name, &category,
		&g.CheckInDate, &g.CheckOutDate, &g.CreatedAt)
	if category.Valid {
		g.Category = category.String
	}
	return g, err
}

// Create inserts a guest record and populates its ID.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	const q = `INSERT INTO guests (property_id, room_number, name, category, check_in_date, check_out_date)
	           VALUES (?, ?, ?, ?, ?, ?)`
	var category interface{}
	if g.Category != "" {
		category = g.Category
	}
	res, err := r.db.ExecContext(ctx, q, g.PropertyID, g.RoomNumber, g.Name, category,
		g.CheckInDate, g.CheckOutDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// CreateBulk inserts an imported guest list in a single statement.
// Passing an empty slice has no effect and returns nil.
func (r *GuestRepo) CreateBulk(ctx context.Context, guests []model.Guest) error {
	if len(guests) == 0 {
		return nil
	}
	query := `INSERT INTO guests (property_id, room_number, name, category, check_in_date, check_out_date) VALUES `
	args := make([]interface{}, 0, len(guests)*6)
	for i, g := range guests {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		var category interface{}
		if g.Category != "" {
			category = g.Category
		}
		args = append(args, g.PropertyID, g.RoomNumber, g.Name, category, g.CheckInDate, g.CheckOutDate)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// GetByProperty lists a property's guests ordered by room number.
func (r *GuestRepo) GetByProperty(ctx context.Context, propertyID uint64) ([]model.Guest, error) {
	const q = `SELECT ` + guestColumns + ` FROM guests WHERE property_id = ? ORDER BY room_number, created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Guest
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// FindByRoom resolves the guest record for a room at allocation time.
// Rooms accumulate records across stays; the newest one wins.
func (r *GuestRepo) FindByRoom(ctx context.Context, propertyID uint64, roomNumber string) (*model.Guest, error) {
	const q = `SELECT ` + guestColumns + ` FROM guests
	           WHERE property_id = ? AND room_number = ?
	           ORDER BY created_at DESC, id DESC LIMIT 1`
	g, err := scanGuest(r.db.QueryRowContext(ctx, q, propertyID, roomNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &g, nil
}

// Delete removes a single guest record.
func (r *GuestRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM guests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGuestNotFound
	}
	return nil
}

// DeleteByProperty clears a property's guest list and returns the
// number of removed records. Existing allocations keep their guest
// snapshots, so listings stay intact.
func (r *GuestRepo) DeleteByProperty(ctx context.Context, propertyID uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM guests WHERE property_id = ?`, propertyID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
