package model

import "time"

// Reservation records one booking transaction in the `reserved_rooms`
// table.  Guest details are stored as a denormalized copy rather than a
// reference into `users`, so booking history survives independently of
// guest records.  A reservation is never deleted; the expiry sweep flips
// Actual to false once the checkout date has passed, and the rows
// accumulate as history.
//
// Fields:
//  ID             – primary key identifier.
//  RoomID         – the booked room (reserved_rooms.id_room, FK to rooms).
//  Name           – guest first name at booking time.
//  Surname        – guest last name at booking time.
//  PassportSeries – guest passport series at booking time.
//  PhoneNumber    – guest phone number at booking time.
//  BookedAt       – server-assigned creation timestamp (UTC).
//  Checkin        – planned arrival date.
//  Checkout       – planned departure date.
//  Commentary     – free-form note attached to the booking.
//  Actual         – true while the reservation is active.
type Reservation struct {
	ID             uint64    `json:"id"`              // reserved_rooms.id
	RoomID         uint64    `json:"id_room"`         // reserved_rooms.id_room
	Name           string    `json:"name"`            // reserved_rooms.name
	Surname        string    `json:"surname"`         // reserved_rooms.surname
	PassportSeries string    `json:"passport_series"` // reserved_rooms.passport_series
	PhoneNumber    string    `json:"phone_number"`    // reserved_rooms.phone_number
	BookedAt       time.Time `json:"datetime"`        // reserved_rooms.datetime
	Checkin        time.Time `json:"checkin"`         // reserved_rooms.checkin
	Checkout       time.Time `json:"checkout"`        // reserved_rooms.checkout
	Commentary     string    `json:"commentary"`      // reserved_rooms.commentary
	Actual         bool      `json:"actual"`          // reserved_rooms.actual
}
