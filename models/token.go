package models

import "time"

// AccessToken and RefreshToken are the persisted records behind the signed
// JWT strings. Each login creates exactly one of each, chained by ID so a
// refresh token can be traced back to the access token it renews. Records
// are never deleted; expiry is evaluated at validation time.

type AccessToken struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Revoked   bool      `json:"revoked" gorm:"default:false"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RefreshToken struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	AccessTokenID uint      `json:"access_token_id" gorm:"index;not null"`
	Revoked       bool      `json:"revoked" gorm:"default:false"`
	ExpiresAt     time.Time `json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Valid reports whether the record can still authenticate at the given time.
func (t *AccessToken) Valid(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}

func (t *RefreshToken) Valid(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}
