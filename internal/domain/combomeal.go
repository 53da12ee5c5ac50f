package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComboMeal bundles products under a percentage discount.
// Price and availability are never stored: they are derived from the
// constituent products at read time so they always track the live catalog.
type ComboMeal struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:64;uniqueIndex" json:"name"`
	Discount  int       `json:"discount"` // percent off, 0-100
	Products  []Product `gorm:"many2many:combo_meal_products;constraint:OnDelete:CASCADE" json:"products"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (ComboMeal) TableName() string {
	return "combo_meal"
}

// ComputedPrice returns the discounted sum of the constituent prices,
// rounded to 2 decimal places.
func (m *ComboMeal) ComputedPrice() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range m.Products {
		sum = sum.Add(p.Price)
	}
	factor := decimal.NewFromInt(int64(100 - m.Discount)).Div(decimal.NewFromInt(100))
	return sum.Mul(factor).Round(2)
}

// Available reports whether every constituent product has stock on hand.
// An empty constituent set is vacuously available; the API never creates
// combos without products.
func (m *ComboMeal) Available() bool {
	for _, p := range m.Products {
		if p.Stock <= 0 {
			return false
		}
	}
	return true
}
