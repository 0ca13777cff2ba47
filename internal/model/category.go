package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies parts and products. Consumed read-only by the
// inventory surfaces; stored by name on parts/products, not by id.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default pluralization.
func (Category) TableName() string { return "categories" }
