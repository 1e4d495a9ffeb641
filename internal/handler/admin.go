// This file implements the administrative endpoints: room CRUD, the
// reservation listing and the expiry sweep.  The sweep is triggered on
// demand; there is no background scheduler in this service.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
	"github.com/iliyamo/hotel-room-booking/internal/service"
)

// AdminHandler serves the administrative endpoints.
type AdminHandler struct {
	Svc *service.BookingService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(svc *service.BookingService) *AdminHandler {
	if svc == nil {
		panic("nil service passed to NewAdminHandler")
	}
	return &AdminHandler{Svc: svc}
}

// roomIDParam parses the :id path parameter.
func roomIDParam(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// CreateRoom handles POST /hotel/admin/rooms.  A duplicate room number
// yields 409.
func (h *AdminHandler) CreateRoom(c echo.Context) error {
	var body struct {
		RoomType    string  `json:"room_type"`
		RoomNumber  int     `json:"room_number"`
		CountRoom   int     `json:"count_room"`
		Description string  `json:"description"`
		Floor       int     `json:"floor"`
		Price       float64 `json:"price"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.RoomType == "" || body.RoomNumber <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_type and a positive room_number are required"})
	}
	room := model.Room{
		RoomType:    body.RoomType,
		RoomNumber:  body.RoomNumber,
		CountRoom:   body.CountRoom,
		Description: body.Description,
		Floor:       body.Floor,
		Price:       body.Price,
	}
	if err := h.Svc.CreateRoom(c.Request().Context(), &room); err != nil {
		if errors.Is(err, repository.ErrRoomNumberTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, room)
}

// UpdateRoom handles PUT /hotel/admin/rooms/:id.  The body is a partial
// patch: only the fields present in the JSON are applied, omitted
// fields stay untouched.  Setting is_reserved here is an explicit
// administrative override of the reservation cache flag and is not
// cross-checked against active reservations.
func (h *AdminHandler) UpdateRoom(c echo.Context) error {
	id, err := roomIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		RoomType    *string  `json:"room_type"`
		RoomNumber  *int     `json:"room_number"`
		CountRoom   *int     `json:"count_room"`
		Description *string  `json:"description"`
		Floor       *int     `json:"floor"`
		Price       *float64 `json:"price"`
		IsReserved  *bool    `json:"is_reserved"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	fields := map[string]any{}
	if body.RoomType != nil {
		fields["room_type"] = *body.RoomType
	}
	if body.RoomNumber != nil {
		fields["room_number"] = *body.RoomNumber
	}
	if body.CountRoom != nil {
		fields["count_room"] = *body.CountRoom
	}
	if body.Description != nil {
		fields["description"] = *body.Description
	}
	if body.Floor != nil {
		fields["floor"] = *body.Floor
	}
	if body.Price != nil {
		fields["price"] = *body.Price
	}
	if body.IsReserved != nil {
		fields["is_reserved"] = *body.IsReserved
	}
	room, err := h.Svc.UpdateRoom(c.Request().Context(), id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /hotel/admin/rooms/:id.  It returns the
// deleted room's prior state.  A room that still has an active
// reservation cannot be deleted and yields 409.
func (h *AdminHandler) DeleteRoom(c echo.Context) error {
	id, err := roomIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	room, err := h.Svc.DeleteRoom(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, service.ErrRoomHasActiveReservation):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room has an active reservation"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.JSON(http.StatusOK, room)
}

// ListReservations handles GET /hotel/admin/reserved-rooms and returns
// the full booking history.  An empty history is an empty array, not an
// error.
func (h *AdminHandler) ListReservations(c echo.Context) error {
	reservations, err := h.Svc.ListReservations(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, reservations)
}

// ExpireReservations handles POST /hotel/admin/reservations/expire.  It
// runs the expiry sweep with today's UTC date and returns the list of
// reservations that were deactivated, which may be empty.
func (h *AdminHandler) ExpireReservations(c echo.Context) error {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	expired, err := h.Svc.ExpireSweep(c.Request().Context(), today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sweep failed"})
	}
	return c.JSON(http.StatusOK, expired)
}
