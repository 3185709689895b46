package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the canonical identity entity. PasswordHash never leaves
// the process; outward representations live in internal/users.
type User struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Email          string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	Username       string     `gorm:"column:username;type:text;not null;uniqueIndex"`
	PasswordHash   string     `gorm:"column:password_hash;not null" json:"-"`
	FullName       *string    `gorm:"column:full_name"`
	Phone          *string    `gorm:"column:phone"`
	Address        *string    `gorm:"column:address"`
	ProfilePicture *string    `gorm:"column:profile_picture"`
	LastLoginAt    *time.Time `gorm:"column:last_login_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
