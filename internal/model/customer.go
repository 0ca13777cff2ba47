package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is referenced by sales by id only — deleting a customer never
// cascades into the sale ledger.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"index;not null"`
	Email     string    `gorm:"not null"`
	Address   string    `gorm:"not null"`
	Company   *string
	NIF       *string `gorm:"column:nif"`
	NIS       *string `gorm:"column:nis"`
	RC        *string `gorm:"column:rc"`
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Phones must stay non-empty; the customer service enforces it.
	Phones []PhoneNumber `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// PhoneNumber is a labeled phone entry belonging to a customer.
type PhoneNumber struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Number     string    `gorm:"not null"`
	Label      string    `gorm:"not null"`
}
