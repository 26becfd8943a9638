package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
)

// Profile is the public view of an account. It never carries the hash.
type Profile struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Profile   `json:"user"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type Repository interface {
	Create(ctx context.Context, user *userDatamodel.User) error
	// GetByEmail returns ErrNotFound when no account matches.
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

type TokenCodec interface {
	Issue(userID int64, email string) (token string, expiresAt time.Time, err error)
	Verify(token string) (*Claims, error)
}

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")

	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrInvalidToken          = errors.New("invalid token")
)

func toProfile(u *userDatamodel.User) *Profile {
	return &Profile{ID: u.ID, Email: u.Email, Username: u.Username}
}
