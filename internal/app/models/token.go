package models

import "time"

// RefreshToken is an opaque refresh token persisted in the 'refresh_tokens' table
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Valid reports whether the token can still be exchanged
func (t *RefreshToken) Valid() bool {
	return !t.Revoked && t.ExpiresAt.After(time.Now())
}
