package domain

import "time"

// Session is one issued bearer token. A user may hold many concurrent
// sessions (one per login/device). Sessions are soft-revoked only:
// IsActive flips to false on logout or observed expiry and never flips back.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `json:"-"`
	Token     string    `gorm:"size:1024;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	IsActive  bool      `gorm:"index;not null;default:true" json:"is_active"`
	LastUsed  time.Time `json:"last_used"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
