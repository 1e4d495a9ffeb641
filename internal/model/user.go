package model

// User represents a registered hotel guest as stored in the `users`
// table.  Guests are created once at registration and never modified or
// deleted afterwards.  Both the passport series and the phone number are
// unique across all users.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – guest first name.
//  Surname        – guest last name.
//  PassportSeries – passport series and number, format "XX1234567".
//  PhoneNumber    – phone number, format "+998xx xxx-xx-xx".
type User struct {
	ID             uint64 `json:"id"`              // users.id
	Name           string `json:"name"`            // users.name
	Surname        string `json:"surname"`         // users.surname
	PassportSeries string `json:"passport_series"` // users.passport_series (unique)
	PhoneNumber    string `json:"phone_number"`    // users.phone_number (unique)
}
