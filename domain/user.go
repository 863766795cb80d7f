package domain

import "time"

// User represents a registered account. The password is only ever held as a
// bcrypt hash; the plaintext never leaves the registration/login request.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
