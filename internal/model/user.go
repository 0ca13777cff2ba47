package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Viewers read; admins mutate.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(10);not null;default:'viewer'"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
