// Package models defines the wire-level data types exchanged with the
// VehicleQ backend. All JSON tags match the server's field names exactly;
// the client never invents or rewrites ids, timestamps or ordering.
package models

// User is the client's cached snapshot of a server-side account record.
// It is created on registration or login and replaced wholesale on profile
// update; the client never mutates individual fields in place.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}
