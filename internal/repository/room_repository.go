package repository

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// RoomRepo provides CRUD access to the `rooms` table plus the
// transactional primitives the booking workflow needs: the conditional
// reservation claim and the bulk release used by the expiry sweep.
type RoomRepo struct{ DB *sql.DB }

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{DB: db} }

const roomColumns = `id, room_type, room_number, count_room, description, floor, price, is_reserved`

func scanRoom(row interface{ Scan(...any) error }) (model.Room, error) {
	var r model.Room
	err := row.Scan(&r.ID, &r.RoomType, &r.RoomNumber, &r.CountRoom,
		&r.Description, &r.Floor, &r.Price, &r.IsReserved)
	return r, err
}

// Create inserts a new room and populates the generated ID.  The room
// number must not be in use by another room; uniqueness is enforced at
// creation time with a pre-check, mirroring the admin contract, and the
// generated ID is read back from the insert result.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	var existing uint64
	err := r.DB.QueryRowContext(ctx,
		`SELECT id FROM rooms WHERE room_number = ? LIMIT 1`, room.RoomNumber).Scan(&existing)
	if err == nil {
		return ErrRoomNumberTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO rooms (room_type, room_number, count_room, description, floor, price, is_reserved)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		room.RoomType, room.RoomNumber, room.CountRoom, room.Description,
		room.Floor, room.Price, room.IsReserved)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	return nil
}

// List returns every room ordered by id.  An empty table yields an
// empty slice, not an error.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]model.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

// GetByID fetches a room by id.  ErrRoomNotFound is returned when no
// such room exists.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	room, err := scanRoom(r.DB.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Room{}, ErrRoomNotFound
	}
	return room, err
}

// GetByIDTx is GetByID executed inside an existing transaction.
func (r *RoomRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Room, error) {
	room, err := scanRoom(tx.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Room{}, ErrRoomNotFound
	}
	return room, err
}

// updatableColumns whitelists the columns administrators may patch.
var updatableColumns = map[string]bool{
	"room_type":   true,
	"room_number": true,
	"count_room":  true,
	"description": true,
	"floor":       true,
	"price":       true,
	"is_reserved": true,
}

// Update applies a partial update: only the columns present in fields
// are written, everything else is left untouched.  Columns outside the
// whitelist are ignored.  The updated row is read back and returned.
// ErrRoomNotFound is returned when the room does not exist.
func (r *RoomRepo) Update(ctx context.Context, id uint64, fields map[string]any) (model.Room, error) {
	// Confirm existence first; UPDATE alone cannot distinguish a missing
	// row from a no-op write.
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Room{}, err
	}
	cols := make([]string, 0, len(fields))
	for col := range fields {
		if updatableColumns[col] {
			cols = append(cols, col)
		}
	}
	if len(cols) > 0 {
		sort.Strings(cols) // deterministic statement text
		sets := make([]string, 0, len(cols))
		args := make([]any, 0, len(cols)+1)
		for _, col := range cols {
			sets = append(sets, col+" = ?")
			args = append(args, fields[col])
		}
		args = append(args, id)
		q := `UPDATE rooms SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
		if _, err := r.DB.ExecContext(ctx, q, args...); err != nil {
			return model.Room{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// ClaimTx atomically marks a free room as reserved inside the given
// transaction.  It reports true when the claim succeeded; a false
// result means the room is either missing or already reserved, which
// the caller disambiguates with GetByIDTx.  The conditional update is
// what prevents two concurrent bookings from both winning the room.
func (r *RoomRepo) ClaimTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE rooms SET is_reserved = 1 WHERE id = ? AND is_reserved = 0`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UnreserveBulkTx clears the reservation flag for every room in ids
// with a single statement.  Passing an empty slice is a no-op.
func (r *RoomRepo) UnreserveBulkTx(ctx context.Context, tx *sql.Tx, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `UPDATE rooms SET is_reserved = 0 WHERE id IN (` + strings.Join(placeholders, ",") + `)`
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

// DeleteTx removes a room row inside the given transaction.
// ErrRoomNotFound is returned when nothing was deleted.
func (r *RoomRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
