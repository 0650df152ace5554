package models

import (
	"time"

	"github.com/google/uuid"
)

// Role enumerates the account kinds known to the platform.
type Role string

const (
	// RoleUser is an ordinary customer placing orders.
	RoleUser Role = "user"

	// RoleRestaurant is a restaurant operator managing a catalog.
	RoleRestaurant Role = "restaurant"

	// RoleCourier is a delivery courier fulfilling orders.
	RoleCourier Role = "courier"
)

// Valid reports whether the role is one of the known account kinds.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleRestaurant, RoleCourier:
		return true
	}
	return false
}

// User represents an identity record. A user is created on the first
// registration attempt (password or passkey flow) and its ID never changes.
//
// Email is unique case-insensitively; uniqueness is enforced both by a
// read-before-write existence check in the service layer and by a unique
// index on lower(email) at the storage layer.
type User struct {
	// ID is the server-assigned unique identifier of the user.
	ID uuid.UUID `json:"id"`

	// Email is the unique login identifier of the account.
	Email string `json:"email"`

	// Role is the account kind: user, restaurant or courier.
	Role Role `json:"role"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
