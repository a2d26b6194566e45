package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/smartflags/seat-allocation/internal/model"
)

// GroupRepo provides data access to seat groups. Membership is stored
// on seats.group_id; the helpers here read it, while SeatRepo's
// AssignGroupTx/ClearGroupTx write it.
type GroupRepo struct {
	db *sql.DB
}

// NewGroupRepo constructs a GroupRepo with the given DB handle.
func NewGroupRepo(db *sql.DB) *GroupRepo { return &GroupRepo{db: db} }

// DB exposes the underlying handle for membership transactions.
func (r *GroupRepo) DB() *sql.DB { return r.db }

// Create inserts a group and populates its ID.
func (r *GroupRepo) Create(ctx context.Context, g *model.SeatGroup) error {
	const q = `INSERT INTO seat_groups (property_id, name) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, g.PropertyID, g.Name)
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

// GetByID fetches a group by id.
func (r *GroupRepo) GetByID(ctx context.Context, id uint64) (*model.SeatGroup, error) {
	const q = `SELECT id, property_id, name, created_at FROM seat_groups WHERE id = ?`
	var g model.SeatGroup
	err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.PropertyID, &g.Name, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

// GetByProperty lists a property's groups ordered by name.
func (r *GroupRepo) GetByProperty(ctx context.Context, propertyID uint64) ([]model.SeatGroup, error) {
	const q = `SELECT id, property_id, name, created_at FROM seat_groups
	           WHERE property_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.SeatGroup
	for rows.Next() {
		var g model.SeatGroup
		if err := rows.Scan(&g.ID, &g.PropertyID, &g.Name, &g.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MemberIDsTx returns the ids of seats currently in the group, with
// the rows locked so a concurrent membership update serializes.
func (r *GroupRepo) MemberIDsTx(ctx context.Context, tx *sql.Tx, groupID uint64) ([]uint64, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM seats WHERE group_id = ? FOR UPDATE`, groupID)
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
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// Delete removes a group and clears the membership of its seats.
func (r *GroupRepo) Delete(ctx context.Context, id uint64) error {
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
		`UPDATE seats SET group_id = NULL, updated_at = CURRENT_TIMESTAMP WHERE group_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM seat_groups WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGroupNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// DiffMembership splits a desired member set against the current one.
// added holds ids present in next but not current; removed the
// reverse. The two sets are disjoint, so the order in which callers
// apply them does not matter.
func DiffMembership(current, next []uint64) (added, removed []uint64) {
	curSet := make(map[uint64]struct{}, len(current))
	for _, id := range current {
		curSet[id] = struct{}{}
	}
	nextSet := make(map[uint64]struct{}, len(next))
	for _, id := range next {
		if _, dup := nextSet[id]; dup {
			continue
		}
		nextSet[id] = struct{}{}
		if _, ok := curSet[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range current {
		if _, ok := nextSet[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}
