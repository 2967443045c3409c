package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Password length bounds. The upper bound keeps passwords inside bcrypt's
// 72-byte input limit with room to spare.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 64

	// MinFullNameLength is the minimum length of a user's full name
	// after trimming surrounding whitespace.
	MinFullNameLength = 3
)

// Common user validation errors.
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrFullNameTooShort    = errors.New("full name must be at least 3 characters long")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 64 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered user of the Taskwell application.
type User struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewUser creates a new User with the given full name and email.
// It generates a new UUID for the user ID and sets the creation/update
// timestamps. The caller is responsible for hashing the password and
// assigning HashedPassword before the user is stored.
// Returns an error if validation fails.
func NewUser(fullName, email string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		FullName:  strings.TrimSpace(fullName),
		Email:     strings.TrimSpace(email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// HashedPassword is not checked here; a user object is valid before
// hashing has been applied.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if len(strings.TrimSpace(u.FullName)) < MinFullNameLength {
		return ErrFullNameTooShort
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword checks a plaintext password against the length bounds.
// Kept separate from Validate so login can enforce the same bounds without
// constructing a user.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// validEmailFormat performs basic validation of email format: a single "@"
// with a non-empty local part and a dotted domain. Malicious or exotic
// addresses are ultimately rejected by the mail round-trip, not here.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	if strings.ContainsAny(email, " \t") {
		return false
	}

	domain := email[at+1:]
	if strings.ContainsRune(domain, '@') {
		return false
	}
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
