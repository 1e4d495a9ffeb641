package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// UserRepo provides access to the `users` table.  Guests are written
// once at registration and read back by id; the table carries unique
// constraints on passport_series and phone_number.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a new guest and populates the generated ID on the
// provided record.  A duplicate passport series or phone number yields
// ErrUserExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.PassportSeries = strings.TrimSpace(u.PassportSeries)
	u.PhoneNumber = strings.TrimSpace(u.PhoneNumber)
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (name, surname, passport_series, phone_number) VALUES (?, ?, ?, ?)`,
		u.Name, u.Surname, u.PassportSeries, u.PhoneNumber)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrUserExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByID fetches a guest by id.  sql.ErrNoRows is returned when the
// guest does not exist.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, surname, passport_series, phone_number FROM users WHERE id = ? LIMIT 1`,
		id).Scan(&u.ID, &u.Name, &u.Surname, &u.PassportSeries, &u.PhoneNumber)
	return u, err
}
