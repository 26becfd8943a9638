package user

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

// Profile is the public view of an account. The password hash never leaves
// the auth package.
type Profile struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Username  string    `json:"username" db:"username"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type UsernameUpdate struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
