package handler_test

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"

	"github.com/iliyamo/hotel-room-booking/internal/handler"
	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
	"github.com/iliyamo/hotel-room-booking/internal/service"
)

// newTestService wires a BookingService over an in-memory SQLite
// database so the handlers are exercised against real SQL.
func newTestService(t *testing.T) *service.BookingService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	schema := []string{
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			surname TEXT NOT NULL,
			passport_series TEXT NOT NULL UNIQUE,
			phone_number TEXT NOT NULL UNIQUE
		);`,
		`CREATE TABLE rooms (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			room_type TEXT NOT NULL,
			room_number INTEGER NOT NULL,
			count_room INTEGER NOT NULL,
			description TEXT NOT NULL,
			floor INTEGER NOT NULL,
			price REAL NOT NULL,
			is_reserved BOOLEAN NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE reserved_rooms (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			id_room INTEGER NOT NULL,
			name TEXT NOT NULL,
			surname TEXT NOT NULL,
			passport_series TEXT NOT NULL,
			phone_number TEXT NOT NULL,
			datetime DATETIME NOT NULL,
			checkin DATE NOT NULL,
			checkout DATE NOT NULL,
			commentary TEXT NOT NULL DEFAULT '',
			actual BOOLEAN NOT NULL DEFAULT 1
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return service.NewBookingService(db,
		repository.NewUserRepo(db),
		repository.NewRoomRepo(db),
		repository.NewReservationRepo(db))
}

// postJSON builds an echo context for a JSON POST and records the response.
func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func seedRoom(t *testing.T, svc *service.BookingService, number int) model.Room {
	t.Helper()
	room := model.Room{
		RoomType:    "standard",
		RoomNumber:  number,
		CountRoom:   2,
		Description: "twin beds",
		Floor:       3,
		Price:       100,
	}
	if err := svc.CreateRoom(context.Background(), &room); err != nil {
		t.Fatalf("create room: %v", err)
	}
	return room
}

func TestCreateUserValidationAndConflict(t *testing.T) {
	e := echo.New()
	h := &handler.GuestHandler{Svc: newTestService(t)}

	cases := []struct {
		name string
		body string
		code int
	}{
		{"missing name", `{"surname":"Karimov","passport_series":"AB1234567","phone_number":"+99890 123-45-67"}`, http.StatusBadRequest},
		{"bad passport", `{"name":"Aziz","surname":"Karimov","passport_series":"A1234567","phone_number":"+99890 123-45-67"}`, http.StatusBadRequest},
		{"bad phone", `{"name":"Aziz","surname":"Karimov","passport_series":"AB1234567","phone_number":"+99890 1234567"}`, http.StatusBadRequest},
		{"valid", `{"name":"Aziz","surname":"Karimov","passport_series":"AB1234567","phone_number":"+99890 123-45-67"}`, http.StatusCreated},
		{"duplicate passport", `{"name":"Bek","surname":"Aliev","passport_series":"AB1234567","phone_number":"+99891 765-43-21"}`, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := postJSON(e, "/hotel/users", tc.body)
			if err := h.CreateUser(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.code, rec.Body.String())
			}
		})
	}
}

func TestBookRoomStatusCodes(t *testing.T) {
	e := echo.New()
	svc := newTestService(t)
	h := &handler.GuestHandler{Svc: svc} // Publish left nil

	booking := func(roomID uint64, checkin, checkout string) string {
		return fmt.Sprintf(`{"id_room":%d,"name":"Aziz","surname":"Karimov","passport_series":"AB1234567","phone_number":"+99890 123-45-67","checkin":%q,"checkout":%q}`,
			roomID, checkin, checkout)
	}

	// No rooms yet: 404, not a 500.
	c, rec := postJSON(e, "/hotel/reserved-rooms", booking(7, "2026-09-01", "2026-09-05"))
	if err := h.BookRoom(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing room: status = %d, want 404 (body %s)", rec.Code, rec.Body.String())
	}

	room := seedRoom(t, svc, 101)

	c, rec = postJSON(e, "/hotel/reserved-rooms", booking(room.ID, "not-a-date", "2026-09-05"))
	if err := h.BookRoom(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date: status = %d, want 400", rec.Code)
	}

	c, rec = postJSON(e, "/hotel/reserved-rooms", booking(room.ID, "2026-09-01", "2026-09-05"))
	if err := h.BookRoom(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("booking: status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"actual":true`) {
		t.Fatalf("booking response missing active reservation: %s", rec.Body.String())
	}

	c, rec = postJSON(e, "/hotel/reserved-rooms", booking(room.ID, "2026-10-01", "2026-10-05"))
	if err := h.BookRoom(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("rebooking: status = %d, want 409 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestListRoomsEmptyHotel(t *testing.T) {
	e := echo.New()
	h := &handler.GuestHandler{Svc: newTestService(t)}

	req := httptest.NewRequest(http.MethodGet, "/hotel/rooms", nil)
	rec := httptest.NewRecorder()
	if err := h.ListRooms(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("body = %q, want []", body)
	}
}

func TestAdminRoomLifecycle(t *testing.T) {
	e := echo.New()
	svc := newTestService(t)
	admin := handler.NewAdminHandler(svc)

	// Create.
	c, rec := postJSON(e, "/hotel/admin/rooms",
		`{"room_type":"lux","room_number":101,"count_room":3,"description":"suite","floor":5,"price":400}`)
	if err := admin.CreateRoom(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	// Duplicate room number.
	c, rec = postJSON(e, "/hotel/admin/rooms",
		`{"room_type":"standard","room_number":101,"count_room":2,"description":"twin","floor":2,"price":90}`)
	if err := admin.CreateRoom(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate number: status = %d, want 409", rec.Code)
	}

	// Partial update: only the price changes.
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"price":450}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetPath("/hotel/admin/rooms/:id")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := admin.UpdateRoom(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"price":450`) || !strings.Contains(body, `"room_type":"lux"`) {
		t.Fatalf("partial update response = %s", body)
	}

	// Delete a missing room.
	req = httptest.NewRequest(http.MethodDelete, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetPath("/hotel/admin/rooms/:id")
	c.SetParamNames("id")
	c.SetParamValues("99")
	if err := admin.DeleteRoom(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing: status = %d, want 404", rec.Code)
	}

	// Delete the real room and get its prior state back.
	req = httptest.NewRequest(http.MethodDelete, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetPath("/hotel/admin/rooms/:id")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := admin.DeleteRoom(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"room_number":101`) {
		t.Fatalf("delete response missing prior state: %s", rec.Body.String())
	}
}

func TestDeleteBookedRoomConflicts(t *testing.T) {
	e := echo.New()
	svc := newTestService(t)
	admin := handler.NewAdminHandler(svc)
	guest := &handler.GuestHandler{Svc: svc}

	room := seedRoom(t, svc, 101)
	c, rec := postJSON(e, "/hotel/reserved-rooms",
		fmt.Sprintf(`{"id_room":%d,"name":"Aziz","surname":"Karimov","passport_series":"AB1234567","phone_number":"+99890 123-45-67","checkin":"2026-09-01","checkout":"2026-09-05"}`, room.ID))
	if err := guest.BookRoom(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("booking: status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetPath("/hotel/admin/rooms/:id")
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(room.ID, 10))
	if err := admin.DeleteRoom(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("delete booked room: status = %d, want 409 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestExpireReservationsEmptySweep(t *testing.T) {
	e := echo.New()
	admin := handler.NewAdminHandler(newTestService(t))

	c, rec := postJSON(e, "/hotel/admin/reservations/expire", "")
	if err := admin.ExpireReservations(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("body = %q, want []", body)
	}
}
