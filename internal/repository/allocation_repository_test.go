package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartflags/seat-allocation/internal/model"
)

func TestFindConflictsTxBuildsHolderSets(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAllocationRepo(db)
	mock.ExpectBegin()
	// Seat 11 is held twice by the same guest (two allocations) and once
	// by another; duplicates must collapse to distinct holders.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT c.seat_id, a.guest_name, a.room_number`)).
		WithArgs(uint64(1), "2026-09-01", model.StatusComplete, uint64(11), uint64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id", "guest_name", "room_number"}).
			AddRow(11, "Ada Vane", "204").
			AddRow(11, "Ada Vane", "204").
			AddRow(11, "Luis Ortega", "310"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT c.device_id, a.guest_name, a.room_number`)).
		WithArgs(uint64(1), "2026-09-01", model.StatusComplete, uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"device_id", "guest_name", "room_number"}).
			AddRow(7, "Ada Vane", "204"))

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	conflict, err := repo.FindConflictsTx(ctx, tx, 1, "2026-09-01", []uint64{11, 12}, []uint64{7})
	require.NoError(t, err)
	require.NotNil(t, conflict)

	assert.ElementsMatch(t, []Holder{
		{GuestName: "Ada Vane", RoomNumber: "204"},
		{GuestName: "Luis Ortega", RoomNumber: "310"},
	}, conflict.Seats[11])
	assert.NotContains(t, conflict.Seats, uint64(12))
	assert.Equal(t, []Holder{{GuestName: "Ada Vane", RoomNumber: "204"}}, conflict.Devices[7])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindConflictsTxNoConflictReturnsNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAllocationRepo(db)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT c.seat_id`)).
		WithArgs(uint64(1), "2026-09-01", model.StatusComplete, uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id", "guest_name", "room_number"}))

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	conflict, err := repo.FindConflictsTx(ctx, tx, 1, "2026-09-01", []uint64{3}, nil)
	require.NoError(t, err)
	assert.Nil(t, conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendEventTxPopulatesID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAllocationRepo(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO allocation_events`)).
		WithArgs(uint64(5), model.EventStatusChange, "Allocated", "Active", "Status changed from Allocated to Active").
		WillReturnResult(sqlmock.NewResult(42, 1))

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	ev := &model.AllocationEvent{
		AllocationID: 5,
		EventType:    model.EventStatusChange,
		OldValue:     "Allocated",
		NewValue:     "Active",
		Description:  "Status changed from Allocated to Active",
	}
	require.NoError(t, repo.AppendEventTx(ctx, tx, ev))
	assert.Equal(t, uint64(42), ev.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTxMissingAllocation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAllocationRepo(db)
	mock.ExpectBegin()
	for _, table := range []string{"allocation_seats", "allocation_devices", "allocation_staff", "allocation_events"} {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM ` + table)).
			WithArgs(uint64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM allocations WHERE id = ?`)).
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	require.ErrorIs(t, repo.DeleteTx(ctx, tx, 99), ErrAllocationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
