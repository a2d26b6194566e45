package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartflags/seat-allocation/internal/model"
	"github.com/smartflags/seat-allocation/internal/repository"
)

// GuestHandler manages the daily guest registry: single and bulk
// imports, listing with eligibility annotation, and clearing the list.
type GuestHandler struct {
	GuestRepo  *repository.GuestRepo
	ConfigRepo *repository.ConfigurationRepo
}

// NewGuestHandler constructs a GuestHandler.
func NewGuestHandler(guestRepo *repository.GuestRepo, configRepo *repository.ConfigurationRepo) *GuestHandler {
	if guestRepo == nil || configRepo == nil {
		panic("nil repository passed to NewGuestHandler")
	}
	return &GuestHandler{GuestRepo: guestRepo, ConfigRepo: configRepo}
}

type guestPayload struct {
	PropertyID   uint64 `json:"property_id"`
	RoomNumber   string `json:"room_number"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

func (p guestPayload) toGuest() (*model.Guest, error) {
	if p.PropertyID == 0 || p.RoomNumber == "" || p.Name == "" {
		return nil, errors.New("property_id, room_number and name are required")
	}
	g := &model.Guest{
		PropertyID: p.PropertyID,
		RoomNumber: p.RoomNumber,
		Name:       p.Name,
		Category:   p.Category,
	}
	if p.CheckInDate != "" {
		t, err := time.ParseInLocation("2006-01-02", p.CheckInDate, time.UTC)
		if err != nil {
			return nil, errors.New("check_in_date must be YYYY-MM-DD")
		}
		g.CheckInDate = &t
	}
	if p.CheckOutDate != "" {
		t, err := time.ParseInLocation("2006-01-02", p.CheckOutDate, time.UTC)
		if err != nil {
			return nil, errors.New("check_out_date must be YYYY-MM-DD")
		}
		g.CheckOutDate = &t
	}
	return g, nil
}

// Create handles POST /v1/guests.
func (h *GuestHandler) Create(c echo.Context) error {
	var body guestPayload
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	g, err := body.toGuest()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.GuestRepo.Create(c.Request().Context(), g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create guest"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": g})
}

// CreateBulk handles POST /v1/guests/bulk, the daily list import. The
// whole batch is validated before anything is written, and the insert
// itself is a single multi-row statement.
func (h *GuestHandler) CreateBulk(c echo.Context) error {
	var body struct {
		Guests []guestPayload `json:"guests"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(body.Guests) == 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "guests is required"})
	}
	guests := make([]model.Guest, 0, len(body.Guests))
	for i, p := range body.Guests {
		g, err := p.toGuest()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error(), "index": i})
		}
		guests = append(guests, *g)
	}
	if err := h.GuestRepo.CreateBulk(c.Request().Context(), guests); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to import guests"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"count": len(guests)})
}

// List handles GET /v1/properties/:property_id/guests. Each guest is
// annotated with whether they are currently inside their stay window,
// evaluated against the property's check-in/check-out times.
func (h *GuestHandler) List(c echo.Context) error {
	propertyID, err := pathID(c, "property_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	guests, err := h.GuestRepo.GetByProperty(ctx, propertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load guests"})
	}
	cfg, err := h.ConfigRepo.Get(ctx, propertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load configuration"})
	}

	type annotated struct {
		model.Guest
		Eligible bool   `json:"eligible"`
		Reason   string `json:"reason,omitempty"`
	}
	nowUTC := time.Now().UTC()
	items := make([]annotated, 0, len(guests))
	for _, g := range guests {
		item := annotated{Guest: g, Eligible: true}
		if eligErr := model.CheckEligibility(&g, cfg, nowUTC); eligErr != nil {
			item.Eligible = false
			var e *model.EligibilityError
			if errors.As(eligErr, &e) {
				item.Reason = e.Reason
			}
		}
		items = append(items, item)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Delete handles DELETE /v1/guests/:id.
func (h *GuestHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.GuestRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete guest"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAll handles DELETE /v1/properties/:property_id/guests, used to
// clear the registry before importing the next daily list.
func (h *GuestHandler) DeleteAll(c echo.Context) error {
	propertyID, err := pathID(c, "property_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	deleted, err := h.GuestRepo.DeleteByProperty(c.Request().Context(), propertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to clear guests"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": deleted})
}
