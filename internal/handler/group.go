package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartflags/seat-allocation/internal/model"
	"github.com/smartflags/seat-allocation/internal/repository"
)

// GroupHandler exposes seat group CRUD and membership reassignment.
// Membership is stored on the seat rows (seats.group_id), so updating
// a group's seat set is a bidirectional diff applied in one transaction.
type GroupHandler struct {
	GroupRepo *repository.GroupRepo
	SeatRepo  *repository.SeatRepo
}

// NewGroupHandler constructs a GroupHandler.
func NewGroupHandler(groupRepo *repository.GroupRepo, seatRepo *repository.SeatRepo) *GroupHandler {
	if groupRepo == nil || seatRepo == nil {
		panic("nil repository passed to NewGroupHandler")
	}
	return &GroupHandler{GroupRepo: groupRepo, SeatRepo: seatRepo}
}

// Create handles POST /v1/groups.
func (h *GroupHandler) Create(c echo.Context) error {
	var body struct {
		PropertyID uint64 `json:"property_id"`
		Name       string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.PropertyID == 0 || body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "property_id and name are required"})
	}
	g := &model.SeatGroup{PropertyID: body.PropertyID, Name: body.Name}
	if err := h.GroupRepo.Create(c.Request().Context(), g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create group"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": g})
}

// List handles GET /v1/properties/:property_id/groups.
func (h *GroupHandler) List(c echo.Context) error {
	propertyID, err := pathID(c, "property_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	groups, err := h.GroupRepo.GetByProperty(c.Request().Context(), propertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load groups"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": groups})
}

// UpdateSeats handles PUT /v1/groups/:id/seats. The request body's
// seat_ids becomes the group's complete membership: seats newly listed
// are assigned to the group, seats no longer listed are detached. Both
// sides of the diff run in one transaction against locked member rows.
func (h *GroupHandler) UpdateSeats(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body struct {
		SeatIDs []uint64 `json:"seat_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	next := dedupeIDs(body.SeatIDs)

	ctx := c.Request().Context()
	group, err := h.GroupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "group not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tx, err := h.GroupRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	current, err := h.GroupRepo.MemberIDsTx(ctx, tx, group.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load group members"})
	}
	added, removed := repository.DiffMembership(current, next)

	if len(added) > 0 {
		// Verify the incoming seats exist and belong to the group's property.
		seats, err := h.SeatRepo.GetByIDsTx(ctx, tx, group.PropertyID, added)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
		}
		if len(seats) != len(added) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "one or more seats not found"})
		}
		if err := h.SeatRepo.AssignGroupTx(ctx, tx, group.ID, added); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to assign seats"})
		}
	}
	if len(removed) > 0 {
		if err := h.SeatRepo.ClearGroupTx(ctx, tx, group.ID, removed); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to detach seats"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{
		"added":   len(added),
		"removed": len(removed),
	})
}

// Delete handles DELETE /v1/groups/:id. Member seats are detached, not
// deleted.
func (h *GroupHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.GroupRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "group not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete group"})
	}
	return c.NoContent(http.StatusNoContent)
}
