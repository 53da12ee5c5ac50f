package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a single sellable catalog item
type Product struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"index" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"` // unit price, 2 decimal places
	Stock     int             `json:"stock"`                           // on-hand units, never negative
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
