package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/labstack/echo/v4"

	"github.com/smartflags/seat-allocation/internal/model"
	"github.com/smartflags/seat-allocation/internal/queue"
	"github.com/smartflags/seat-allocation/internal/repository"
	queuepub "github.com/smartflags/seat-allocation/internal/service"
)

// maxConflictHolders caps how many holding guests a conflict response
// names per contested seat or device.
const maxConflictHolders = 3

// AllocationHandler orchestrates the allocation engine: creation with
// eligibility, blocked-seat and conflict checks, the status and
// calling-flag lifecycle, deletion, and the allocated-ids query. Every
// check-then-act sequence runs inside a single transaction; the
// requested seat rows are locked up front so two concurrent creations
// over overlapping seats serialize instead of double-booking.
type AllocationHandler struct {
	AllocationRepo *repository.AllocationRepo
	SeatRepo       *repository.SeatRepo
	DeviceRepo     *repository.DeviceRepo
	GuestRepo      *repository.GuestRepo
	StaffRepo      *repository.StaffRepo
	ConfigRepo     *repository.ConfigurationRepo
}

// NewAllocationHandler constructs an AllocationHandler with the
// provided repositories. All dependencies must be non-nil.
func NewAllocationHandler(allocationRepo *repository.AllocationRepo, seatRepo *repository.SeatRepo, deviceRepo *repository.DeviceRepo, guestRepo *repository.GuestRepo, staffRepo *repository.StaffRepo, configRepo *repository.ConfigurationRepo) *AllocationHandler {
	if allocationRepo == nil || seatRepo == nil || deviceRepo == nil || guestRepo == nil || staffRepo == nil || configRepo == nil {
		panic("nil repository passed to NewAllocationHandler")
	}
	return &AllocationHandler{
		AllocationRepo: allocationRepo,
		SeatRepo:       seatRepo,
		DeviceRepo:     deviceRepo,
		GuestRepo:      guestRepo,
		StaffRepo:      staffRepo,
		ConfigRepo:     configRepo,
	}
}

// allocDates accepts the date layouts clients send for allocation
// dates. Full timestamps are truncated to their UTC calendar day.
var allocDates = &now.Config{
	TimeLocation: time.UTC,
	TimeFormats:  []string{"2006-01-02", "2006/01/02", "2006-01-02 15:04:05", time.RFC3339},
}

// allocationDate normalizes a request date to a UTC calendar day,
// defaulting to today when empty.
func allocationDate(s string) (string, error) {
	if s == "" {
		return allocDates.With(time.Now().UTC()).BeginningOfDay().Format("2006-01-02"), nil
	}
	t, err := allocDates.Parse(s)
	if err != nil {
		return "", err
	}
	return allocDates.With(t).BeginningOfDay().Format("2006-01-02"), nil
}

// Create handles POST /v1/allocations.
//
// Sequence: resolve the guest by room, verify the eligibility window,
// resolve the F&B manager, then inside one transaction lock the
// requested seats, reject blocked ones, run the conflict check against
// non-terminal allocations of the same date, persist the allocation
// with its seat/device/staff children and a Created event, and flip
// the seats to ALLOCATED. An allocation.created message is published
// after commit; publish failures never roll anything back.
func (h *AllocationHandler) Create(c echo.Context) error {
	var body struct {
		PropertyID     uint64   `json:"property_id"`
		RoomNumber     string   `json:"room_number"`
		FBManagerID    uint64   `json:"fb_manager_id"`
		SeatIDs        []uint64 `json:"seat_ids"`
		DeviceIDs      []uint64 `json:"device_ids"`
		AllocationDate string   `json:"allocation_date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.PropertyID == 0 || body.RoomNumber == "" || body.FBManagerID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "property_id, room_number and fb_manager_id are required"})
	}
	seatIDs := dedupeIDs(body.SeatIDs)
	if len(seatIDs) == 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "seat_ids is required"})
	}
	deviceIDs := dedupeIDs(body.DeviceIDs)

	date, err := allocationDate(body.AllocationDate)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "allocation_date must be a calendar date"})
	}

	ctx := c.Request().Context()

	guest, err := h.GuestRepo.FindByRoom(ctx, body.PropertyID, body.RoomNumber)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no guest registered for room " + body.RoomNumber})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	cfg, err := h.ConfigRepo.Get(ctx, body.PropertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load configuration"})
	}
	if eligErr := model.CheckEligibility(guest, cfg, time.Now().UTC()); eligErr != nil {
		var e *model.EligibilityError
		if errors.As(eligErr, &e) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"error":    e.Reason,
				"boundary": e.Boundary,
			})
		}
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": eligErr.Error()})
	}

	if _, err := h.StaffRepo.GetByID(ctx, body.FBManagerID, body.PropertyID); err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "staff member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	// Staff fan-out snapshot: everyone currently holding the attendant
	// or server role at the property, captured once at creation.
	attendants, err := h.staffSnapshot(ctx, body.PropertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load staff"})
	}

	tx, err := h.AllocationRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Locks the seat rows for the rest of the transaction.
	seats, err := h.SeatRepo.GetByIDsTx(ctx, tx, body.PropertyID, seatIDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}
	if len(seats) != len(seatIDs) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "one or more seats not found"})
	}
	blocked := make([]string, 0)
	seatNumbers := make(map[uint64]string, len(seats))
	for _, s := range seats {
		seatNumbers[s.ID] = s.SeatNumber
		if s.Status == model.SeatBlocked {
			blocked = append(blocked, s.SeatNumber)
		}
	}
	if len(blocked) > 0 {
		blockedErr := &repository.BlockedSeatsError{SeatNumbers: blocked}
		return c.JSON(http.StatusConflict, echo.Map{
			"error":        blockedErr.Error(),
			"seat_numbers": blockedErr.SeatNumbers,
		})
	}

	deviceSerials := make(map[uint64]string, len(deviceIDs))
	if len(deviceIDs) > 0 {
		devices, err := h.DeviceRepo.GetByIDsTx(ctx, tx, body.PropertyID, deviceIDs)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load devices"})
		}
		if len(devices) != len(deviceIDs) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "one or more devices not found"})
		}
		for _, d := range devices {
			deviceSerials[d.ID] = d.Serial
		}
	}

	conflict, err := h.AllocationRepo.FindConflictsTx(ctx, tx, body.PropertyID, date, seatIDs, deviceIDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check conflicts"})
	}
	if conflict != nil {
		return c.JSON(http.StatusConflict, conflictResponse(conflict, seatNumbers, deviceSerials))
	}

	alloc := &model.Allocation{
		PropertyID:     body.PropertyID,
		GuestID:        guest.ID,
		GuestName:      guest.Name,
		GuestCategory:  guest.Category,
		RoomNumber:     guest.RoomNumber,
		FBManagerID:    body.FBManagerID,
		AllocationDate: date,
		Status:         model.StatusAllocated,
		CallingFlag:    model.NonCalling,
		SeatIDs:        seatIDs,
		DeviceIDs:      deviceIDs,
		Attendants:     attendants,
	}
	if err := h.AllocationRepo.CreateTx(ctx, tx, alloc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create allocation"})
	}
	if err := h.AllocationRepo.AddSeatsTx(ctx, tx, alloc.ID, seatIDs); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record seats"})
	}
	if err := h.AllocationRepo.AddDevicesTx(ctx, tx, alloc.ID, deviceIDs); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record devices"})
	}
	if err := h.AllocationRepo.AddStaffTx(ctx, tx, alloc.ID, attendants); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record staff"})
	}
	created := &model.AllocationEvent{
		AllocationID: alloc.ID,
		EventType:    model.EventCreated,
		Description:  fmt.Sprintf("Allocation created for %s (room %s)", guest.Name, guest.RoomNumber),
	}
	if err := h.AllocationRepo.AppendEventTx(ctx, tx, created); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record event"})
	}
	if err := h.SeatRepo.AllocateTx(ctx, tx, seatIDs); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update seat status"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	userID, _ := getUserID(c)
	labels := make([]string, 0, len(seatIDs))
	for _, id := range seatIDs {
		labels = append(labels, seatNumbers[id])
	}
	go func() {
		_ = queuepub.PublishAllocationCreated(context.Background(), queue.AllocationCreatedEvent{
			AllocationID: alloc.ID,
			PropertyID:   alloc.PropertyID,
			GuestID:      alloc.GuestID,
			GuestName:    alloc.GuestName,
			RoomNumber:   alloc.RoomNumber,
			Date:         alloc.AllocationDate,
			SeatNumbers:  labels,
			DeviceCount:  len(deviceIDs),
			CreatedBy:    fmt.Sprintf("%d", userID),
			CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusCreated, echo.Map{"item": alloc})
}

// staffSnapshot collects the attendant and server staff of the property.
func (h *AllocationHandler) staffSnapshot(ctx context.Context, propertyID uint64) ([]model.StaffSnapshot, error) {
	snapshot := make([]model.StaffSnapshot, 0)
	for _, role := range []string{model.RolePoolBeachAttendant, model.RoleFBServer} {
		staff, err := h.StaffRepo.ListByRole(ctx, propertyID, role)
		if err != nil {
			return nil, err
		}
		for _, s := range staff {
			snapshot = append(snapshot, model.StaffSnapshot{StaffID: s.ID, RoleName: s.RoleName})
		}
	}
	return snapshot, nil
}

// conflictResponse renders a conflict as a 409 payload naming each
// contested seat/device and up to maxConflictHolders distinct holders.
func conflictResponse(conflict *repository.ConflictError, seatNumbers map[uint64]string, deviceSerials map[uint64]string) echo.Map {
	type holder struct {
		GuestName  string `json:"guest_name"`
		RoomNumber string `json:"room_number"`
	}
	type contested struct {
		ID     uint64   `json:"id"`
		Label  string   `json:"label"`
		HeldBy []holder `json:"held_by"`
	}
	capHolders := func(hs []repository.Holder) []holder {
		if len(hs) > maxConflictHolders {
			hs = hs[:maxConflictHolders]
		}
		out := make([]holder, 0, len(hs))
		for _, h := range hs {
			out = append(out, holder{GuestName: h.GuestName, RoomNumber: h.RoomNumber})
		}
		return out
	}
	seats := make([]contested, 0, len(conflict.Seats))
	for id, hs := range conflict.Seats {
		seats = append(seats, contested{ID: id, Label: seatNumbers[id], HeldBy: capHolders(hs)})
	}
	devices := make([]contested, 0, len(conflict.Devices))
	for id, hs := range conflict.Devices {
		devices = append(devices, contested{ID: id, Label: deviceSerials[id], HeldBy: capHolders(hs)})
	}
	return echo.Map{
		"error":   "seats or devices already allocated for this date",
		"seats":   seats,
		"devices": devices,
	}
}

// List handles GET /v1/properties/:property_id/allocations. Complete
// allocations are hidden unless ?all=true.
func (h *AllocationHandler) List(c echo.Context) error {
	propertyID, err := pathID(c, "property_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	includeComplete := strings.EqualFold(c.QueryParam("all"), "true")
	items, err := h.AllocationRepo.ListByProperty(c.Request().Context(), propertyID, includeComplete)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load allocations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/allocations/:id. The response includes the seat
// and device sets, the staff snapshot and the full event log.
func (h *AllocationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	alloc, err := h.AllocationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAllocationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "allocation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load allocation"})
	}
	events, err := h.AllocationRepo.ListEvents(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": alloc, "events": events})
}

// ListEvents handles GET /v1/allocations/:id/events.
func (h *AllocationHandler) ListEvents(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if _, err := h.AllocationRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAllocationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "allocation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load allocation"})
	}
	events, err := h.AllocationRepo.ListEvents(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": events})
}

// SetStatus handles PATCH /v1/allocations/:id/status. Any member of
// the status set may be applied from any other; every change appends a
// Status Change event. Reaching Complete additionally releases the
// allocation's seats in the same transaction, and releasing is
// idempotent, so re-completing an allocation is harmless.
func (h *AllocationHandler) SetStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body struct {
		Status model.AllocationStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Status == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "empty update payload"})
	}
	if !body.Status.IsValid() {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid allocation status"})
	}
	ctx := c.Request().Context()
	tx, err := h.AllocationRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	alloc, err := h.AllocationRepo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAllocationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "allocation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load allocation"})
	}
	if err := h.AllocationRepo.UpdateStatusTx(ctx, tx, id, body.Status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
	}
	ev := &model.AllocationEvent{
		AllocationID: id,
		EventType:    model.EventStatusChange,
		OldValue:     alloc.Status.String(),
		NewValue:     body.Status.String(),
		Description:  fmt.Sprintf("Status changed from %s to %s", alloc.Status, body.Status),
	}
	if err := h.AllocationRepo.AppendEventTx(ctx, tx, ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record event"})
	}
	if body.Status.IsTerminal() {
		seatIDs, err := h.AllocationRepo.SeatIDsTx(ctx, tx, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
		}
		if err := h.SeatRepo.ReleaseTx(ctx, tx, seatIDs); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to release seats"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": body.Status})
}

// SetCallingFlag handles PATCH /v1/allocations/:id/calling-flag. The
// flag is an axis independent of status. A change away from Non Calling
// appends a Calling On event and publishes a guest.calling message so
// attendants can be alerted; a change back appends Calling Off.
func (h *AllocationHandler) SetCallingFlag(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body struct {
		CallingFlag model.CallingFlag `json:"calling_flag"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.CallingFlag == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "empty update payload"})
	}
	if !body.CallingFlag.IsValid() {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid calling flag"})
	}
	ctx := c.Request().Context()
	tx, err := h.AllocationRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	alloc, err := h.AllocationRepo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAllocationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "allocation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load allocation"})
	}
	if err := h.AllocationRepo.UpdateCallingFlagTx(ctx, tx, id, body.CallingFlag); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update calling flag"})
	}
	eventType := model.EventCallingOff
	if body.CallingFlag != model.NonCalling {
		eventType = model.EventCallingOn
	}
	ev := &model.AllocationEvent{
		AllocationID: id,
		EventType:    eventType,
		OldValue:     alloc.CallingFlag.String(),
		NewValue:     body.CallingFlag.String(),
		Description:  fmt.Sprintf("Calling flag changed from %s to %s", alloc.CallingFlag, body.CallingFlag),
	}
	if err := h.AllocationRepo.AppendEventTx(ctx, tx, ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record event"})
	}

	// Gather seat labels before commit for the notification payload.
	var labels []string
	if body.CallingFlag != model.NonCalling {
		seatIDs, err := h.AllocationRepo.SeatIDsTx(ctx, tx, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
		}
		seats, err := h.SeatRepo.GetByIDsTx(ctx, tx, alloc.PropertyID, seatIDs)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
		}
		for _, s := range seats {
			labels = append(labels, s.SeatNumber)
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	if body.CallingFlag != model.NonCalling {
		go func() {
			_ = queuepub.PublishGuestCalling(context.Background(), queue.GuestCallingEvent{
				AllocationID: alloc.ID,
				PropertyID:   alloc.PropertyID,
				GuestName:    alloc.GuestName,
				RoomNumber:   alloc.RoomNumber,
				SeatNumbers:  strings.Join(labels, ","),
				Flag:         body.CallingFlag.String(),
				ChangedAt:    time.Now().UTC().Format(time.RFC3339),
			})
		}()
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "calling_flag": body.CallingFlag})
}

// Delete handles DELETE /v1/allocations/:id. The allocation and its
// children are removed and its seats released. Release only touches
// seats still marked ALLOCATED, so deleting an allocation that already
// reached Complete changes no seat rows.
func (h *AllocationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	tx, err := h.AllocationRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := h.AllocationRepo.GetForUpdateTx(ctx, tx, id); err != nil {
		if errors.Is(err, repository.ErrAllocationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "allocation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load allocation"})
	}
	seatIDs, err := h.AllocationRepo.SeatIDsTx(ctx, tx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}
	if err := h.AllocationRepo.DeleteTx(ctx, tx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete allocation"})
	}
	if err := h.SeatRepo.ReleaseTx(ctx, tx, seatIDs); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to release seats"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.NoContent(http.StatusNoContent)
}

// AllocatedIDs handles
// GET /v1/properties/:property_id/allocations/allocated-seats. It
// returns the seat and device ids held by non-Complete allocations on
// the given date, defaulting to today.
func (h *AllocationHandler) AllocatedIDs(c echo.Context) error {
	propertyID, err := pathID(c, "property_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	date, err := allocationDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "date must be a calendar date"})
	}
	seatIDs, deviceIDs, err := h.AllocationRepo.AllocatedIDs(c.Request().Context(), propertyID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load allocated ids"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"allocated_seat_ids":   seatIDs,
		"allocated_device_ids": deviceIDs,
	})
}
