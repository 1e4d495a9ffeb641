package model

// Room describes a bookable hotel room as stored in the `rooms` table.
// IsReserved is a derived cache flag: it must be true exactly when the
// room has an active reservation whose checkout date is still in the
// future.  The booking workflow and the expiry sweep are the only code
// paths allowed to flip it, apart from explicit administrative updates.
//
// Fields:
//  ID          – primary key identifier.
//  RoomType    – category of the room (standard, lux, ...).
//  RoomNumber  – the door number; unique among rooms at creation time.
//  CountRoom   – number of sub-rooms inside the unit.
//  Description – free-form description.
//  Floor       – floor the room is located on.
//  Price       – price per stay.
//  IsReserved  – reservation cache flag (see above).
type Room struct {
	ID          uint64  `json:"id"`          // rooms.id
	RoomType    string  `json:"room_type"`   // rooms.room_type
	RoomNumber  int     `json:"room_number"` // rooms.room_number
	CountRoom   int     `json:"count_room"`  // rooms.count_room
	Description string  `json:"description"` // rooms.description
	Floor       int     `json:"floor"`       // rooms.floor
	Price       float64 `json:"price"`       // rooms.price
	IsReserved  bool    `json:"is_reserved"` // rooms.is_reserved
}
