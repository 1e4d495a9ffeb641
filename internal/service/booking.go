// Package service implements the reservation consistency engine: the
// rules that keep rooms.is_reserved and reserved_rooms.actual in sync
// with real checkin/checkout dates and with concurrent booking attempts.
// Every multi-statement operation runs inside a single transaction so a
// failure cannot leave a room flagged reserved without a matching
// reservation row, or the reverse.
package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// ErrRoomAlreadyReserved is returned by Book when the room exists but
// already carries an active booking.
var ErrRoomAlreadyReserved = errors.New("room already reserved")

// ErrRoomHasActiveReservation is returned by DeleteRoom when an active
// reservation still references the room.  The administrator has to run
// the expiry sweep (or wait for checkout) before removing the room.
var ErrRoomHasActiveReservation = errors.New("room has an active reservation")

// BookingService exposes the operations of the booking system.  It owns
// the transactions; repositories only execute statements.
type BookingService struct {
	db           *sql.DB
	users        *repository.UserRepo
	rooms        *repository.RoomRepo
	reservations *repository.ReservationRepo
}

// NewBookingService constructs a BookingService.  All dependencies must
// be non-nil.
func NewBookingService(db *sql.DB, users *repository.UserRepo, rooms *repository.RoomRepo, reservations *repository.ReservationRepo) *BookingService {
	if db == nil || users == nil || rooms == nil || reservations == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{db: db, users: users, rooms: rooms, reservations: reservations}
}

// BookingRequest carries the inputs of a booking: the target room, the
// guest details copied into the reservation row, the stay window and an
// optional commentary.  The engine trusts field formats; the handlers
// validate passport and phone patterns before calling in.  The stay
// window itself is deliberately unchecked (checkin < checkout is not
// enforced), matching the external contract.
type BookingRequest struct {
	RoomID         uint64
	Name           string
	Surname        string
	PassportSeries string
	PhoneNumber    string
	Checkin        time.Time
	Checkout       time.Time
	Commentary     string
}

// RegisterUser stores a new guest.  Duplicate passport series or phone
// numbers surface as repository.ErrUserExists.
func (s *BookingService) RegisterUser(ctx context.Context, u *model.User) error {
	return s.users.Create(ctx, u)
}

// ListRooms returns all rooms; an empty hotel yields an empty slice.
func (s *BookingService) ListRooms(ctx context.Context) ([]model.Room, error) {
	return s.rooms.List(ctx)
}

// ListReservations returns the full booking history, active rows included.
func (s *BookingService) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	return s.reservations.List(ctx)
}

// CreateRoom stores a new room.  A duplicate room number surfaces as
// repository.ErrRoomNumberTaken.
func (s *BookingService) CreateRoom(ctx context.Context, room *model.Room) error {
	return s.rooms.Create(ctx, room)
}

// UpdateRoom applies a partial update to a room and returns the updated
// row.  Only the columns present in fields are written; an empty set is
// a no-op that returns the current state.  Cross-field consistency is
// not re-validated: an administrator may flip is_reserved directly, as
// an explicit override of the cache flag.
func (s *BookingService) UpdateRoom(ctx context.Context, id uint64, fields map[string]any) (model.Room, error) {
	return s.rooms.Update(ctx, id, fields)
}

// Book reserves a room for the requested stay.  Inside one transaction
// it claims the room with a conditional update (so at most one of any
// number of concurrent calls can win), inserts the reservation row with
// actual = 1 and a server-assigned timestamp, and commits.  A failed
// claim is disambiguated into repository.ErrRoomNotFound or
// ErrRoomAlreadyReserved by re-reading the room in the same transaction.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) (model.Reservation, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Reservation{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	claimed, err := s.rooms.ClaimTx(ctx, tx, req.RoomID)
	if err != nil {
		return model.Reservation{}, err
	}
	if !claimed {
		if _, err := s.rooms.GetByIDTx(ctx, tx, req.RoomID); err != nil {
			return model.Reservation{}, err // ErrRoomNotFound or a store fault
		}
		return model.Reservation{}, ErrRoomAlreadyReserved
	}

	res := model.Reservation{
		RoomID:         req.RoomID,
		Name:           req.Name,
		Surname:        req.Surname,
		PassportSeries: req.PassportSeries,
		PhoneNumber:    req.PhoneNumber,
		BookedAt:       time.Now().UTC(),
		Checkin:        req.Checkin,
		Checkout:       req.Checkout,
		Commentary:     req.Commentary,
		Actual:         true,
	}
	if err := s.reservations.CreateTx(ctx, tx, &res); err != nil {
		return model.Reservation{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Reservation{}, err
	}
	committed = true
	return res, nil
}

// ExpireSweep deactivates every active reservation whose checkout date
// is on or before today and frees the rooms they reference.  Both batch
// updates run in one transaction, one statement per table.  The sweep
// returns the pre-update snapshot of the expired rows; with no expired
// rows it returns an empty slice without writing anything.  Running it
// twice with the same date is a no-op the second time.
func (s *BookingService) ExpireSweep(ctx context.Context, today time.Time) ([]model.Reservation, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	expired, err := s.reservations.ListExpiredTx(ctx, tx, today)
	if err != nil {
		return nil, err
	}
	if len(expired) == 0 {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		committed = true
		return expired, nil
	}

	resIDs := make([]uint64, 0, len(expired))
	roomIDs := make([]uint64, 0, len(expired))
	seen := make(map[uint64]struct{}, len(expired))
	for _, res := range expired {
		resIDs = append(resIDs, res.ID)
		if _, ok := seen[res.RoomID]; !ok {
			seen[res.RoomID] = struct{}{}
			roomIDs = append(roomIDs, res.RoomID)
		}
	}
	if err := s.rooms.UnreserveBulkTx(ctx, tx, roomIDs); err != nil {
		return nil, err
	}
	if err := s.reservations.DeactivateBulkTx(ctx, tx, resIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return expired, nil
}

// DeleteRoom removes a room and returns its prior state.  Deletion is
// refused with ErrRoomHasActiveReservation while an active reservation
// references the room; historical (actual = 0) rows do not block it.
// Existence check, guard and delete share one transaction.
func (s *BookingService) DeleteRoom(ctx context.Context, id uint64) (model.Room, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Room{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	room, err := s.rooms.GetByIDTx(ctx, tx, id)
	if err != nil {
		return model.Room{}, err
	}
	active, err := s.reservations.HasActiveForRoomTx(ctx, tx, id)
	if err != nil {
		return model.Room{}, err
	}
	if active {
		return model.Room{}, ErrRoomHasActiveReservation
	}
	if err := s.rooms.DeleteTx(ctx, tx, id); err != nil {
		return model.Room{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Room{}, err
	}
	committed = true
	return room, nil
}
