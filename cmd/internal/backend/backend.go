// Package backend describes the hosted collaborators the application talks to:
// one record table per entity type, an object store for files and photos, and
// an identity provider. Every view and service depends on these interfaces only,
// so the gorm/S3/Cognito implementations can be swapped for the in-memory ones.
package backend

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrNotFound is returned when an id does not match any record or object.
	ErrNotFound = errors.New("record not found")

	ErrNoSession          = errors.New("no active session")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserNotConfirmed   = errors.New("user is not confirmed")
	ErrAlreadyConfirmed   = errors.New("user is already confirmed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("password does not meet requirements")
	ErrCodeMismatch       = errors.New("confirmation code mismatch")
)

// Record is implemented by every table-backed entity.
type Record interface {
	GetID() string
	SetID(id string)

	// Stamp sets the creation time when unset and always refreshes the update time.
	Stamp(nowMillis int64)

	// Created is the creation time in epoch millis, zero until first stored.
	Created() int64
	SetCreated(millis int64)

	// DisplayName is the composite name list views sort on.
	DisplayName() string
}

// Records is the table contract shared by children, families, staff and notes.
type Records[T Record] interface {
	SelectAll(ctx context.Context) ([]T, error)
	SelectByID(ctx context.Context, id string) (T, error)

	// Insert assigns the id and returns the stored record.
	Insert(ctx context.Context, rec T) (T, error)

	// Update replaces every mutable column of the record with the same id.
	Update(ctx context.Context, rec T) (T, error)

	Delete(ctx context.Context, id string) error
}

// FileObject describes one stored object. Name is the key relative to the
// prefix it was listed under.
type FileObject struct {
	Name      string
	Type      string
	Size      int64
	CreatedAt time.Time
}

// PublicPrefix is where user uploaded files live in the object store.
const PublicPrefix = "public/"

type FileStore interface {
	List(ctx context.Context, prefix string) ([]FileObject, error)
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, keys ...string) error
	PublicURL(key string) (string, error)
}

type Credentials struct {
	Email    string
	Password string
}

type User struct {
	ID            string
	Email         string
	EmailVerified bool
}

// Session is the server-issued proof of authentication.
type Session struct {
	AccessToken string
	IDToken     string
	UserID      string
	Email       string
	ExpiresAt   time.Time
}

type Auth interface {
	SignUp(ctx context.Context, creds Credentials) (*User, error)
	ConfirmSignUp(ctx context.Context, email, code string) error
	ResendConfirmation(ctx context.Context, email string) error
	SignIn(ctx context.Context, creds Credentials) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error

	// GetSession validates the access token and returns ErrNoSession when it is
	// missing, malformed or expired.
	GetSession(ctx context.Context, accessToken string) (*Session, error)
	GetUser(ctx context.Context, accessToken string) (*User, error)
}
