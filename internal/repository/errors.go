// Package repository defines error values that are reused across
// multiple repositories.  These sentinel values allow higher layers such
// as the booking service and the HTTP handlers to distinguish between
// failure scenarios: a missing room must map to 404 while a duplicate
// uniqueness violation maps to 409.
package repository

import (
	"errors"
	"strings"
)

// ErrRoomNotFound is returned when an operation references a room id
// that does not exist in the rooms table.
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomNumberTaken is returned when creating a room whose room_number
// is already used by another room.
var ErrRoomNumberTaken = errors.New("room number already exists")

// ErrUserExists is returned when registering a guest whose passport
// series or phone number is already present in the users table.
var ErrUserExists = errors.New("passport series or phone number already registered")

// isDuplicateKey reports whether err is a uniqueness violation.  MySQL
// reports error 1062 for duplicate entries; SQLite (used by the test
// suite) reports "UNIQUE constraint failed".
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1062") || strings.Contains(msg, "unique constraint")
}
