package models

import "time"

// AccessToken is an opaque bearer credential. Only the SHA-256 digest of the
// token is stored; the plaintext is returned once at login.
type AccessToken struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	TokenHash string    `gorm:"type:char(64);uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
