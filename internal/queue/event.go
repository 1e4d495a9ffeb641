// Package queue defines message payloads exchanged over the message
// broker, the publisher that emits them and the background consumer
// that turns them into an operational booking log.
package queue

// RoomBookedEvent is published when a booking commits.  It carries
// enough information for downstream consumers to log or feed analytics
// without querying the primary database.
type RoomBookedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	RoomID        uint64 `json:"room_id"`
	GuestName     string `json:"guest_name"`
	GuestSurname  string `json:"guest_surname"`
	Checkin       string `json:"checkin"`
	Checkout      string `json:"checkout"`
	BookedAt      string `json:"booked_at"`
}
