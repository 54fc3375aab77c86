package models

import "time"

// RefreshToken represents a persisted refresh token row
type RefreshToken struct {
	ID         int64     `json:"id"`
	Token      string    `json:"token"`
	UserID     int64     `json:"userId"`
	ExpiryDate time.Time `json:"expiryDate"`
	IsRevoked  bool      `json:"isRevoked"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Expired reports whether the token's expiry date has passed.
func (t *RefreshToken) Expired() bool {
	return time.Now().After(t.ExpiryDate)
}
