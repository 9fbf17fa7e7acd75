package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking-bot/internal/booking"
)

// BookingHandler exposes the booking engine's entry points over HTTP for
// the presentation gateway.  Every endpoint resolves the holder identity
// injected by the auth middleware, forwards the action to the engine and
// returns the resulting render directive as JSON.  Engine errors are
// logged here; the directive already carries the user-facing recovery
// (a notice or a re-prompt), so the gateway still gets a 200 with
// something to render.
type BookingHandler struct {
	Engine *booking.Engine
}

// NewBookingHandler constructs a BookingHandler.  The engine must be non-nil.
func NewBookingHandler(engine *booking.Engine) *BookingHandler {
	if engine == nil {
		panic("nil engine passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: engine}
}

// getHolderID extracts the holder identity placed in context by the
// GatewayAuth middleware.
func getHolderID(c echo.Context) (int64, error) {
	switch t := c.Get("holder_id").(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid holder_id in context")
}

func (h *BookingHandler) respond(c echo.Context, action string, d booking.Directive, err error) error {
	if err != nil {
		log.Printf("booking-api: %s: %v", action, err)
	}
	return c.JSON(http.StatusOK, d)
}

// SelectLocale handles POST /v1/actions/locale.
// Body: {"locale": "am"|"ru"|"en"}.
func (h *BookingHandler) SelectLocale(c echo.Context) error {
	holderID, err := getHolderID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Locale string `json:"locale"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	d, err := h.Engine.SelectLocale(c.Request().Context(), holderID, body.Locale)
	return h.respond(c, "select locale", d, err)
}

// StartBooking handles POST /v1/actions/start.  It begins a fresh draft,
// replacing any unfinished one.
func (h *BookingHandler) StartBooking(c echo.Context) error {
	holderID, err := getHolderID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	d, err := h.Engine.StartBooking(c.Request().Context(), holderID)
	return h.respond(c, "start booking", d, err)
}

// SelectDate handles POST /v1/actions/date.
// Body: {"date": "YYYY-MM-DD"}.
func (h *BookingHandler) SelectDate(c echo.Context) error {
	holderID, err := getHolderID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Date string `json:"date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	d, err := h.Engine.SelectDate(c.Request().Context(), holderID, body.Date)
	return h.respond(c, "select date", d, err)
}

// SelectSlot handles POST /v1/actions/slot.
// Body: {"date": "YYYY-MM-DD", "slot": 18}.
func (h *BookingHandler) SelectSlot(c echo.Context) error {
	holderID, err := getHolderID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Date string `json:"date"`
		Slot int    `json:"slot"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	d, err := h.Engine.SelectSlot(c.Request().Context(), holderID, body.Date, body.Slot)
	return h.respond(c, "select slot", d, err)
}

// SelectPartySize handles POST /v1/actions/party-size.
// Body: {"party_size": "1-2"|"2-4"|"4+", "username": ..., "first_name": ..., "last_name": ...}.
// The display fields are optional and recorded on the booking verbatim.
func (h *BookingHandler) SelectPartySize(c echo.Context) error {
	holderID, err := getHolderID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		PartySize string  `json:"party_size"`
		Username  *string `json:"username"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	info := booking.HolderInfo{
		Username:  body.Username,
		FirstName: body.FirstName,
		LastName:  body.LastName,
	}
	d, err := h.Engine.SelectPartySize(c.Request().Context(), holderID, body.PartySize, info)
	return h.respond(c, "select party size", d, err)
}

// ListBookings handles GET /v1/bookings.  It returns the holder's active
// bookings from tomorrow onward.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	holderID, err := getHolderID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	d, err := h.Engine.ListBookings(c.Request().Context(), holderID)
	return h.respond(c, "list bookings", d, err)
}

func bookingIDParam(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id != 0
}

// RequestCancel handles POST /v1/bookings/:id/cancel.
func (h *BookingHandler) RequestCancel(c echo.Context) error {
	holderID, err := getHolderID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := bookingIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	d, err := h.Engine.RequestCancel(c.Request().Context(), holderID, id)
	return h.respond(c, "request cancel", d, err)
}

// ConfirmCancel handles POST /v1/bookings/:id/cancel/confirm.
func (h *BookingHandler) ConfirmCancel(c echo.Context) error {
	holderID, err := getHolderID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := bookingIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	d, err := h.Engine.ConfirmCancel(c.Request().Context(), holderID, id)
	return h.respond(c, "confirm cancel", d, err)
}

// DenyCancel handles POST /v1/bookings/cancel/deny.
func (h *BookingHandler) DenyCancel(c echo.Context) error {
	holderID, err := getHolderID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	d, err := h.Engine.DenyCancel(c.Request().Context(), holderID)
	return h.respond(c, "deny cancel", d, err)
}
