package repository // repository defines data access for seats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/smartflags/seat-allocation/internal/model"
)

// MaxGenerateSpan caps the size of one bulk seat generation batch.
const MaxGenerateSpan = 1000

// SeatRepo provides methods to work with seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *SeatRepo) DB() *sql.DB { return r.db }

// BuildSeatNumbers renders the labels for a bulk generation request.
// One label is produced per integer in [start, end], zero-padded to
// the digit count of end: prefix "A-", range 1..12 yields A-01..A-12.
// Returns ErrInvalidRange when start > end or the span exceeds
// MaxGenerateSpan.
func BuildSeatNumbers(prefix, suffix string, start, end int) ([]string, error) {
	if start > end {
		return nil, fmt.Errorf("%w: start %d after end %d", ErrInvalidRange, start, end)
	}
	if end-start > MaxGenerateSpan {
		return nil, fmt.Errorf("%w: span %d exceeds %d", ErrInvalidRange, end-start, MaxGenerateSpan)
	}
	width := len(strconv.Itoa(end))
	numbers := make([]string, 0, end-start+1)
	for n := start; n <= end; n++ {
		numbers = append(numbers, fmt.Sprintf("%s%0*d%s", prefix, width, n, suffix))
	}
	return numbers, nil
}

// GenerateSeats inserts one FREE seat per label in a single multi-row
// statement, so the batch lands all-or-nothing. groupID may be nil.
// It returns the number of seats created.
func (r *SeatRepo) GenerateSeats(ctx context.Context, propertyID, seatTypeID uint64, groupID *uint64, numbers []string) (int, error) {
	if len(numbers) == 0 {
		return 0, nil
	}
	query := `INSERT INTO seats (property_id, seat_type_id, group_id, seat_number, status) VALUES `
	args := make([]interface{}, 0, len(numbers)*5)
	for i, num := range numbers {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, propertyID, seatTypeID, groupID, num, model.SeatFree)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return 0, err
	}
	return len(numbers), nil
}

// Create inserts a single seat record. On success the seat's ID is populated.
func (r *SeatRepo) Create(ctx context.Context, s *model.Seat) error {
	const q = `INSERT INTO seats (property_id, seat_type_id, group_id, device_id, seat_number, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	status := s.Status
	if status == "" {
		status = model.SeatFree
	}
	res, err := r.db.ExecContext(ctx, q, s.PropertyID, s.SeatTypeID, s.GroupID, s.DeviceID, s.SeatNumber, status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	s.Status = status
	return nil
}

const seatColumns = `id, property_id, seat_type_id, group_id, device_id, seat_number, status, created_at, updated_at`

func scanSeat(row interface{ Scan(...interface{}) error }) (model.Seat, error) {
	var s model.Seat
	err := row.Scan(&s.ID, &s.PropertyID, &s.SeatTypeID, &s.GroupID, &s.DeviceID,
		&s.SeatNumber, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// GetByProperty retrieves all seats of a property ordered by seat
// number. When status is non-empty only seats in that state return.
func (r *SeatRepo) GetByProperty(ctx context.Context, propertyID uint64, status model.SeatStatus) ([]model.Seat, error) {
	q := `SELECT ` + seatColumns + ` FROM seats WHERE property_id = ?`
	args := []interface{}{propertyID}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY seat_number`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT ` + seatColumns + ` FROM seats WHERE id = ?`
	s, err := scanSeat(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByIDsTx loads the requested seats of a property inside a
// transaction, locking the rows (FOR UPDATE) so concurrent allocation
// attempts on the same seats serialize. The caller must verify that
// every requested id was returned.
func (r *SeatRepo) GetByIDsTx(ctx context.Context, tx *sql.Tx, propertyID uint64, ids []uint64) ([]model.Seat, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := `SELECT ` + seatColumns + ` FROM seats
	      WHERE property_id = ? AND id IN (` + placeholders(len(ids)) + `) FOR UPDATE`
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

	var result []model.Seat
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SetStatus sets a seat's status after validating the value.
func (r *SeatRepo) SetStatus(ctx context.Context, id uint64, status model.SeatStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid seat status %q", status)
	}
	const q = `UPDATE seats SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

// BulkSetStatus sets the status of many seats at once.
func (r *SeatRepo) BulkSetStatus(ctx context.Context, ids []uint64, status model.SeatStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid seat status %q", status)
	}
	if len(ids) == 0 {
		return nil
	}
	q := `UPDATE seats SET status = ?, updated_at = CURRENT_TIMESTAMP
	      WHERE id IN (` + placeholders(len(ids)) + `)`
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, status)
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

// AllocateTx marks the given seats ALLOCATED within the transaction.
// The rows are expected to be locked already (GetByIDsTx) and verified
// not blocked, so this is a plain update.
func (r *SeatRepo) AllocateTx(ctx context.Context, tx *sql.Tx, ids []uint64) error {
	return r.setStatusTx(ctx, tx, ids, model.SeatAllocated, "")
}

// ReleaseTx returns seats to FREE within the transaction. Only seats
// still marked ALLOCATED are touched, which makes release idempotent:
// releasing the seats of a completed allocation a second time, or
// deleting the allocation afterwards, changes nothing.
func (r *SeatRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, ids []uint64) error {
	return r.setStatusTx(ctx, tx, ids, model.SeatFree, model.SeatAllocated)
}

func (r *SeatRepo) setStatusTx(ctx context.Context, tx *sql.Tx, ids []uint64, to, onlyFrom model.SeatStatus) error {
	if len(ids) == 0 {
		return nil
	}
	q := `UPDATE seats SET status = ?, updated_at = CURRENT_TIMESTAMP
	      WHERE id IN (` + placeholders(len(ids)) + `)`
	args := make([]interface{}, 0, len(ids)+2)
	args = append(args, to)
	for _, id := range ids {
		args = append(args, id)
	}
	if onlyFrom != "" {
		q += ` AND status = ?`
		args = append(args, onlyFrom)
	}
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

// ToggleBlock flips a seat between BLOCKED and FREE. Toggling a seat
// an allocation currently holds fails with ErrSeatAllocated rather
// than silently freeing it. The read-modify-write runs in its own
// transaction with the row locked.
func (r *SeatRepo) ToggleBlock(ctx context.Context, id uint64) (model.SeatStatus, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var status model.SeatStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM seats WHERE id = ? FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrSeatNotFound
		}
		return "", err
	}
	var next model.SeatStatus
	switch status {
	case model.SeatBlocked:
		next = model.SeatFree
	case model.SeatFree:
		next = model.SeatBlocked
	default:
		return "", ErrSeatAllocated
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE seats SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, next, id); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	committed = true
	return next, nil
}

// AssignGroupTx sets seats' group membership within a transaction.
func (r *SeatRepo) AssignGroupTx(ctx context.Context, tx *sql.Tx, groupID uint64, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	q := `UPDATE seats SET group_id = ?, updated_at = CURRENT_TIMESTAMP
	      WHERE id IN (` + placeholders(len(ids)) + `)`
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, groupID)
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

// ClearGroupTx clears group membership for seats that still belong to
// the given group. The group_id guard keeps a concurrent re-assignment
// to another group intact.
func (r *SeatRepo) ClearGroupTx(ctx context.Context, tx *sql.Tx, groupID uint64, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	q := `UPDATE seats SET group_id = NULL, updated_at = CURRENT_TIMESTAMP
	      WHERE group_id = ? AND id IN (` + placeholders(len(ids)) + `)`
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, groupID)
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

// placeholders renders "?,?,...,?" for IN clauses with n members.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
