// Package handler defines the HTTP handlers of the booking API.  This
// file implements the guest-facing endpoints: registration, room
// listing and booking.  Handlers translate HTTP requests into engine
// operations, validate field formats at the boundary and map the
// engine's sentinel errors onto status codes; the engine itself trusts
// its inputs.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/queue"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
	"github.com/iliyamo/hotel-room-booking/internal/service"
	"github.com/iliyamo/hotel-room-booking/internal/utils"
)

// dateLayout is the wire format for checkin/checkout dates.
const dateLayout = "2006-01-02"

// GuestHandler serves the guest endpoints.  Publish emits a room.booked
// event after a successful booking; it is best-effort and may be nil
// (tests leave it unset).
type GuestHandler struct {
	Svc     *service.BookingService
	Publish func(ctx context.Context, ev queue.RoomBookedEvent) error
}

// NewGuestHandler constructs a GuestHandler wired to the queue publisher.
func NewGuestHandler(svc *service.BookingService) *GuestHandler {
	if svc == nil {
		panic("nil service passed to NewGuestHandler")
	}
	return &GuestHandler{Svc: svc, Publish: queue.PublishRoomBooked}
}

// CreateUser handles POST /hotel/users.  It registers a guest after
// validating the passport and phone formats.  Duplicate passport or
// phone yields 409.
func (h *GuestHandler) CreateUser(c echo.Context) error {
	var body struct {
		Name           string `json:"name"`
		Surname        string `json:"surname"`
		PassportSeries string `json:"passport_series"`
		PhoneNumber    string `json:"phone_number"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" || body.Surname == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and surname are required"})
	}
	if !utils.ValidPassportSeries(body.PassportSeries) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passport series must look like XX1234567"})
	}
	if !utils.ValidPhoneNumber(body.PhoneNumber) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone number must look like +998xx xxx-xx-xx"})
	}
	u := model.User{
		Name:           body.Name,
		Surname:        body.Surname,
		PassportSeries: body.PassportSeries,
		PhoneNumber:    body.PhoneNumber,
	}
	if err := h.Svc.RegisterUser(c.Request().Context(), &u); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "passport series or phone number already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, u)
}

// ListRooms handles GET /hotel/rooms.  An empty hotel returns an empty
// array with 200, not an error.
func (h *GuestHandler) ListRooms(c echo.Context) error {
	rooms, err := h.Svc.ListRooms(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, rooms)
}

// BookRoom handles POST /hotel/reserved-rooms.  It books a room for a
// date range.  A missing room yields 404 and a room with an active
// booking yields 409; the checkin/checkout window itself is not
// cross-validated.  On success a room.booked event is published
// best-effort after the transaction commits.
func (h *GuestHandler) BookRoom(c echo.Context) error {
	var body struct {
		RoomID         uint64 `json:"id_room"`
		Name           string `json:"name"`
		Surname        string `json:"surname"`
		PassportSeries string `json:"passport_series"`
		PhoneNumber    string `json:"phone_number"`
		Checkin        string `json:"checkin"`
		Checkout       string `json:"checkout"`
		Commentary     string `json:"commentary"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id_room is required"})
	}
	if body.Name == "" || body.Surname == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and surname are required"})
	}
	if !utils.ValidPassportSeries(body.PassportSeries) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passport series must look like XX1234567"})
	}
	if !utils.ValidPhoneNumber(body.PhoneNumber) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone number must look like +998xx xxx-xx-xx"})
	}
	checkin, err := time.ParseInLocation(dateLayout, body.Checkin, time.UTC)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkin must be a YYYY-MM-DD date"})
	}
	checkout, err := time.ParseInLocation(dateLayout, body.Checkout, time.UTC)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkout must be a YYYY-MM-DD date"})
	}

	res, err := h.Svc.Book(c.Request().Context(), service.BookingRequest{
		RoomID:         body.RoomID,
		Name:           body.Name,
		Surname:        body.Surname,
		PassportSeries: body.PassportSeries,
		PhoneNumber:    body.PhoneNumber,
		Checkin:        checkin,
		Checkout:       checkout,
		Commentary:     body.Commentary,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, service.ErrRoomAlreadyReserved):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room already reserved"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
		}
	}

	if h.Publish != nil {
		ev := queue.RoomBookedEvent{
			ReservationID: res.ID,
			RoomID:        res.RoomID,
			GuestName:     res.Name,
			GuestSurname:  res.Surname,
			Checkin:       res.Checkin.Format(dateLayout),
			Checkout:      res.Checkout.Format(dateLayout),
			BookedAt:      res.BookedAt.Format(time.RFC3339),
		}
		if err := h.Publish(c.Request().Context(), ev); err != nil {
			log.Printf("room.booked publish failed for reservation %d: %v", res.ID, err)
		}
	}
	return c.JSON(http.StatusCreated, res)
}
