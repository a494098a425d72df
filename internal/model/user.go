// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a registered account.
//
// WHY int64 IDs?
// Every entity in the store gets its ID from one shared monotonically
// increasing counter, so IDs are globally unique across entity kinds
// (a User and an Interview never share an ID). int64 matches what a
// SERIAL/INTEGER PRIMARY KEY column holds when we run on SQLite.
//
// WHY `json:"-"` ON Password?
// The field holds a bcrypt hash, and it must never leave the server.
// Tagging it "-" means encoding/json skips it entirely — no handler can
// accidentally leak it in a response, because the marshaller won't write it.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicUser is the projection returned by the register and login
// endpoints. The frontend only needs enough to greet the user and key
// its requests.
type PublicUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
}

// Public returns the projection of u safe to hand to any caller.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
	}
}
