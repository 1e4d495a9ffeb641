package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// ReservationRepo provides access to the `reserved_rooms` table.  Rows
// are inserted by the booking workflow and flipped to actual = 0 by the
// expiry sweep; they are never deleted and accumulate as booking
// history.  All timestamps are stored in UTC.
type ReservationRepo struct{ DB *sql.DB }

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

const reservationColumns = `id, id_room, name, surname, passport_series, phone_number, datetime, checkin, checkout, commentary, actual`

func scanReservation(row interface{ Scan(...any) error }) (model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(&res.ID, &res.RoomID, &res.Name, &res.Surname,
		&res.PassportSeries, &res.PhoneNumber, &res.BookedAt,
		&res.Checkin, &res.Checkout, &res.Commentary, &res.Actual)
	return res, err
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction and populates the generated ID on the provided record.
// The caller owns the commit or rollback.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO reserved_rooms (id_room, name, surname, passport_series, phone_number, datetime, checkin, checkout, commentary, actual)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.RoomID, res.Name, res.Surname, res.PassportSeries, res.PhoneNumber,
		res.BookedAt, res.Checkin, res.Checkout, res.Commentary, res.Actual)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// List returns every reservation, active and historical, ordered by id.
// An empty table yields an empty slice.
func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reserved_rooms ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListExpiredTx selects, inside the given transaction, every active
// reservation whose checkout date has passed (checkout <= today).  The
// actual = 1 filter keeps already swept rows out, which is what makes
// the sweep idempotent.
func (r *ReservationRepo) ListExpiredTx(ctx context.Context, tx *sql.Tx, today time.Time) ([]model.Reservation, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reserved_rooms WHERE actual = 1 AND checkout <= ? ORDER BY id`,
		today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeactivateBulkTx flips actual to 0 for every reservation in ids with
// a single statement.  Passing an empty slice is a no-op.
func (r *ReservationRepo) DeactivateBulkTx(ctx context.Context, tx *sql.Tx, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `UPDATE reserved_rooms SET actual = 0 WHERE id IN (` + strings.Join(placeholders, ",") + `)`
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

// HasActiveForRoomTx reports, inside the given transaction, whether any
// active reservation still references the room.
func (r *ReservationRepo) HasActiveForRoomTx(ctx context.Context, tx *sql.Tx, roomID uint64) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reserved_rooms WHERE id_room = ? AND actual = 1`, roomID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
