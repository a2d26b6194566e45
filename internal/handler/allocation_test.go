package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartflags/seat-allocation/internal/model"
	"github.com/smartflags/seat-allocation/internal/repository"
)

func newAllocationHandler(t *testing.T) (*AllocationHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	h := NewAllocationHandler(
		repository.NewAllocationRepo(db),
		repository.NewSeatRepo(db),
		repository.NewDeviceRepo(db),
		repository.NewGuestRepo(db),
		repository.NewStaffRepo(db),
		repository.NewConfigurationRepo(db),
	)
	return h, mock
}

func newJSONContext(t *testing.T, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "7")
	return c, rec
}

var seatCols = []string{"id", "property_id", "seat_type_id", "group_id", "device_id", "seat_number", "status", "created_at", "updated_at"}

var allocationCols = []string{"id", "property_id", "guest_id", "guest_name", "guest_category", "room_number",
	"fb_manager_id", "allocation_date", "status", "calling_flag", "created_at", "updated_at"}

// expectPreflight queues the lookups Create performs before opening the
// transaction: guest by room, configuration, manager, staff fan-out.
func expectPreflight(mock sqlmock.Sqlmock, ts time.Time) {
	mock.ExpectQuery(regexp.QuoteMeta(`FROM guests`)).
		WithArgs(uint64(1), "204").
		WillReturnRows(sqlmock.NewRows([]string{"id", "property_id", "room_number", "name", "category", "check_in_date", "check_out_date", "created_at"}).
			AddRow(31, 1, "204", "Ada Vane", nil, nil, nil, ts))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM configurations`)).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"property_id", "check_in_time", "check_out_time"}))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM staff`)).
		WithArgs(uint64(9), uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "property_id", "name", "role_name", "created_at"}).
			AddRow(9, 1, "Marta Ilic", model.RoleFBManager, ts))
	for range []int{0, 1} {
		mock.ExpectQuery(regexp.QuoteMeta(`role_name = ?`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "property_id", "name", "role_name", "created_at"}))
	}
}

func TestCreateAllocationBlockedSeats(t *testing.T) {
	h, mock := newAllocationHandler(t)
	ts := time.Now().UTC()

	expectPreflight(mock, ts)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM seats`)).
		WithArgs(uint64(1), uint64(11), uint64(12)).
		WillReturnRows(sqlmock.NewRows(seatCols).
			AddRow(11, 1, 2, nil, nil, "A-01", string(model.SeatFree), ts, ts).
			AddRow(12, 1, 2, nil, nil, "A-02", string(model.SeatBlocked), ts, ts))
	mock.ExpectRollback()

	c, rec := newJSONContext(t, http.MethodPost,
		`{"property_id":1,"room_number":"204","fb_manager_id":9,"seat_ids":[11,12],"allocation_date":"2026-09-01"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "seats blocked")
	assert.Contains(t, rec.Body.String(), "A-02")
	assert.NotContains(t, rec.Body.String(), "A-01")
	assert.NoError(t, mock.ExpectationsWereMet(), "no allocation may be written when seats are blocked")
}

func TestAllocationDateNormalization(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain date", in: "2026-09-01", want: "2026-09-01"},
		{name: "slash separators", in: "2026/09/01", want: "2026-09-01"},
		{name: "datetime truncates to day", in: "2026-09-01 18:30:00", want: "2026-09-01"},
		{name: "rfc3339 truncates to day", in: "2026-09-01T18:30:00Z", want: "2026-09-01"},
		{name: "empty defaults to today", in: "", want: time.Now().UTC().Format("2006-01-02")},
		{name: "garbage rejected", in: "first of june", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := allocationDate(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCreateAllocationConflictNamesHolders(t *testing.T) {
	h, mock := newAllocationHandler(t)
	ts := time.Now().UTC()

	expectPreflight(mock, ts)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM seats`)).
		WithArgs(uint64(1), uint64(11)).
		WillReturnRows(sqlmock.NewRows(seatCols).
			AddRow(11, 1, 2, nil, nil, "A-01", string(model.SeatFree), ts, ts))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT c.seat_id`)).
		WithArgs(uint64(1), "2026-09-01", model.StatusComplete, uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id", "guest_name", "room_number"}).
			AddRow(11, "Luis Ortega", "310"))
	mock.ExpectRollback()

	c, rec := newJSONContext(t, http.MethodPost,
		`{"property_id":1,"room_number":"204","fb_manager_id":9,"seat_ids":[11],"allocation_date":"2026-09-01"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Luis Ortega")
	assert.Contains(t, rec.Body.String(), "310")
	assert.Contains(t, rec.Body.String(), "A-01")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConflictResponseCapsHoldersAtThree(t *testing.T) {
	h, mock := newAllocationHandler(t)
	ts := time.Now().UTC()

	expectPreflight(mock, ts)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM seats`)).
		WithArgs(uint64(1), uint64(11)).
		WillReturnRows(sqlmock.NewRows(seatCols).
			AddRow(11, 1, 2, nil, nil, "A-01", string(model.SeatFree), ts, ts))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT c.seat_id`)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id", "guest_name", "room_number"}).
			AddRow(11, "Luis Ortega", "310").
			AddRow(11, "Mira Sefton", "311").
			AddRow(11, "Owen Pratt", "312").
			AddRow(11, "Tessa Nunn", "313"))
	mock.ExpectRollback()

	c, rec := newJSONContext(t, http.MethodPost,
		`{"property_id":1,"room_number":"204","fb_manager_id":9,"seat_ids":[11],"allocation_date":"2026-09-01"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Seats []struct {
			ID     uint64 `json:"id"`
			HeldBy []struct {
				GuestName string `json:"guest_name"`
			} `json:"held_by"`
		} `json:"seats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Seats, 1)
	assert.Len(t, resp.Seats[0].HeldBy, maxConflictHolders)
	assert.NotContains(t, rec.Body.String(), "Tessa Nunn")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAllocationSuccess(t *testing.T) {
	h, mock := newAllocationHandler(t)
	ts := time.Now().UTC()

	expectPreflight(mock, ts)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM seats`)).
		WithArgs(uint64(1), uint64(11)).
		WillReturnRows(sqlmock.NewRows(seatCols).
			AddRow(11, 1, 2, nil, nil, "A-01", string(model.SeatFree), ts, ts))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT c.seat_id`)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id", "guest_name", "room_number"}))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO allocations`)).
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT created_at, updated_at FROM allocations`)).
		WithArgs(uint64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(ts, ts))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO allocation_seats`)).
		WithArgs(uint64(77), uint64(11)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO allocation_events`)).
		WithArgs(uint64(77), model.EventCreated, nil, nil, "Allocation created for Ada Vane (room 204)").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE seats SET status = ?`)).
		WithArgs(model.SeatAllocated, uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, rec := newJSONContext(t, http.MethodPost,
		`{"property_id":1,"room_number":"204","fb_manager_id":9,"seat_ids":[11],"allocation_date":"2026-09-01"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ada Vane")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAllocationRequiresSeats(t *testing.T) {
	h, mock := newAllocationHandler(t)

	c, rec := newJSONContext(t, http.MethodPost,
		`{"property_id":1,"room_number":"204","fb_manager_id":9,"seat_ids":[]}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAllocationIneligibleGuest(t *testing.T) {
	h, mock := newAllocationHandler(t)
	ts := time.Now().UTC()
	past := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM guests`)).
		WithArgs(uint64(1), "204").
		WillReturnRows(sqlmock.NewRows([]string{"id", "property_id", "room_number", "name", "category", "check_in_date", "check_out_date", "created_at"}).
			AddRow(31, 1, "204", "Ada Vane", nil, past, past, ts))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM configurations`)).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"property_id", "check_in_time", "check_out_time"}))

	c, rec := newJSONContext(t, http.MethodPost,
		`{"property_id":1,"room_number":"204","fb_manager_id":9,"seat_ids":[11]}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), model.BoundaryAlreadyCheckedOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func setPathID(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}

func allocationRow(ts time.Time, status model.AllocationStatus, flag model.CallingFlag) *sqlmock.Rows {
	return sqlmock.NewRows(allocationCols).
		AddRow(5, 1, 31, "Ada Vane", nil, "204", 9, ts, string(status), string(flag), ts, ts)
}

func TestSetStatusCompleteReleasesSeats(t *testing.T) {
	h, mock := newAllocationHandler(t)
	ts := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM allocations WHERE id = ? FOR UPDATE`)).
		WithArgs(uint64(5)).
		WillReturnRows(allocationRow(ts, model.StatusBilling, model.NonCalling))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE allocations SET status = ?`)).
		WithArgs(model.StatusComplete, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO allocation_events`)).
		WithArgs(uint64(5), model.EventStatusChange, "Billing", "Complete", "Status changed from Billing to Complete").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT seat_id FROM allocation_seats`)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(11).AddRow(12))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE seats SET status = ?`)).
		WithArgs(model.SeatFree, uint64(11), uint64(12), model.SeatAllocated).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	c, rec := newJSONContext(t, http.MethodPatch, `{"status":"Complete"}`)
	setPathID(c, "5")
	require.NoError(t, h.SetStatus(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Walks an allocation through Allocated -> Active -> Complete and
// checks the event log holds exactly the creation entry plus one entry
// per transition, ordered by id, with the last change coinciding with
// seat release.
func TestStatusLifecycleEventLog(t *testing.T) {
	h, mock := newAllocationHandler(t)
	ts := time.Now().UTC()

	// Allocated -> Active.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM allocations WHERE id = ? FOR UPDATE`)).
		WithArgs(uint64(5)).
		WillReturnRows(allocationRow(ts, model.StatusAllocated, model.NonCalling))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE allocations SET status = ?`)).
		WithArgs(model.StatusActive, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO allocation_events`)).
		WithArgs(uint64(5), model.EventStatusChange, "Allocated", "Active", "Status changed from Allocated to Active").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	// Active -> Complete, releasing the seat in the same transaction.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM allocations WHERE id = ? FOR UPDATE`)).
		WithArgs(uint64(5)).
		WillReturnRows(allocationRow(ts, model.StatusActive, model.NonCalling))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE allocations SET status = ?`)).
		WithArgs(model.StatusComplete, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO allocation_events`)).
		WithArgs(uint64(5), model.EventStatusChange, "Active", "Complete", "Status changed from Active to Complete").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT seat_id FROM allocation_seats`)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(11))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE seats SET status = ?`)).
		WithArgs(model.SeatFree, uint64(11), model.SeatAllocated).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	for _, status := range []string{"Active", "Complete"} {
		c, rec := newJSONContext(t, http.MethodPatch, `{"status":"`+status+`"}`)
		setPathID(c, "5")
		require.NoError(t, h.SetStatus(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// The log now carries Created plus the two transitions, id-ordered.
	mock.ExpectQuery(regexp.QuoteMeta(`FROM allocations WHERE id = ?`)).
		WithArgs(uint64(5)).
		WillReturnRows(allocationRow(ts, model.StatusComplete, model.NonCalling))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM allocation_seats`)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM allocation_devices`)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"device_id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM allocation_staff`)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"staff_id", "role_name"}))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM allocation_events`)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "allocation_id", "event_type", "old_value", "new_value", "description", "created_at"}).
			AddRow(1, 5, model.EventCreated, nil, nil, "Allocation created for Ada Vane (room 204)", ts).
			AddRow(2, 5, model.EventStatusChange, "Allocated", "Active", "Status changed from Allocated to Active", ts).
			AddRow(3, 5, model.EventStatusChange, "Active", "Complete", "Status changed from Active to Complete", ts))

	c, rec := newJSONContext(t, http.MethodGet, ``)
	setPathID(c, "5")
	require.NoError(t, h.ListEvents(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []struct {
			ID        uint64
			EventType string
			OldValue  string
			NewValue  string
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 3)
	for i := 1; i < len(resp.Items); i++ {
		assert.Greater(t, resp.Items[i].ID, resp.Items[i-1].ID)
	}
	assert.Equal(t, model.EventCreated, resp.Items[0].EventType)
	assert.Equal(t, model.EventStatusChange, resp.Items[1].EventType)
	assert.Equal(t, "Complete", resp.Items[2].NewValue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	h, mock := newAllocationHandler(t)

	c, rec := newJSONContext(t, http.MethodPatch, `{"status":"Cancelled"}`)
	setPathID(c, "5")
	require.NoError(t, h.SetStatus(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusEmptyPayload(t *testing.T) {
	h, mock := newAllocationHandler(t)

	c, rec := newJSONContext(t, http.MethodPatch, `{}`)
	setPathID(c, "5")
	require.NoError(t, h.SetStatus(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetCallingFlagAppendsCallingOnEvent(t *testing.T) {
	h, mock := newAllocationHandler(t)
	ts := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM allocations WHERE id = ? FOR UPDATE`)).
		WithArgs(uint64(5)).
		WillReturnRows(allocationRow(ts, model.StatusActive, model.NonCalling))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE allocations SET calling_flag = ?`)).
		WithArgs(model.Calling, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO allocation_events`)).
		WithArgs(uint64(5), model.EventCallingOn, "Non Calling", "Calling", "Calling flag changed from Non Calling to Calling").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT seat_id FROM allocation_seats`)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM seats`)).
		WithArgs(uint64(1), uint64(11)).
		WillReturnRows(sqlmock.NewRows(seatCols).
			AddRow(11, 1, 2, nil, nil, "A-01", string(model.SeatAllocated), ts, ts))
	mock.ExpectCommit()

	c, rec := newJSONContext(t, http.MethodPatch, `{"calling_flag":"Calling"}`)
	setPathID(c, "5")
	require.NoError(t, h.SetCallingFlag(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetCallingFlagOffSkipsSeatLookup(t *testing.T) {
	h, mock := newAllocationHandler(t)
	ts := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM allocations WHERE id = ? FOR UPDATE`)).
		WithArgs(uint64(5)).
		WillReturnRows(allocationRow(ts, model.StatusActive, model.Calling))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE allocations SET calling_flag = ?`)).
		WithArgs(model.NonCalling, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO allocation_events`)).
		WithArgs(uint64(5), model.EventCallingOff, "Calling", "Non Calling", "Calling flag changed from Calling to Non Calling").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	c, rec := newJSONContext(t, http.MethodPatch, `{"calling_flag":"Non Calling"}`)
	setPathID(c, "5")
	require.NoError(t, h.SetCallingFlag(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAllocationAfterComplete(t *testing.T) {
	h, mock := newAllocationHandler(t)
	ts := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM allocations WHERE id = ? FOR UPDATE`)).
		WithArgs(uint64(5)).
		WillReturnRows(allocationRow(ts, model.StatusComplete, model.NonCalling))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT seat_id FROM allocation_seats`)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(11))
	for _, table := range []string{"allocation_seats", "allocation_devices", "allocation_staff", "allocation_events"} {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM ` + table)).
			WithArgs(uint64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM allocations WHERE id = ?`)).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Seats already FREE after Complete; the conditional release matches
	// zero rows and that is fine.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE seats SET status = ?`)).
		WithArgs(model.SeatFree, uint64(11), model.SeatAllocated).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	c, rec := newJSONContext(t, http.MethodDelete, ``)
	setPathID(c, "5")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllocationNotFound(t *testing.T) {
	h, mock := newAllocationHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM allocations WHERE id = ?`)).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows(allocationCols))

	c, rec := newJSONContext(t, http.MethodGet, ``)
	setPathID(c, "404")
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
