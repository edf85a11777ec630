package domain

import "time"

// User represents a registered account. The ID is assigned by the
// credential store at creation time and is immutable afterwards.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a User from a username and an already-hashed password.
// Hashing is the caller's responsibility; plaintext passwords never reach
// the domain layer.
func NewUser(username, hashedPassword string) (*User, error) {
	user := &User{
		Username:       username,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns a ValidationError if any field fails validation.
func (u *User) Validate() error {
	if u.Username == "" {
		return NewValidationError("username", "cannot be empty")
	}

	if u.HashedPassword == "" {
		return NewValidationError("password", "cannot be empty")
	}

	return nil
}
