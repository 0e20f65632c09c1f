package model

import "time"

// DefaultProfilePic marks a user that never uploaded an avatar. It is never
// deleted from disk when a real picture replaces it.
const DefaultProfilePic = "default.jpg"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	Username     string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	ProfilePic   string    `gorm:"size:255;not null" json:"profile_pic"`
	Bio          string    `gorm:"size:512" json:"bio"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
