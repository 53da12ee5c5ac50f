package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"order_id"`
	StaffID   int64        `gorm:"index" json:"staff,string"`
	Staff     *StaffMember `gorm:"foreignKey:StaffID;constraint:OnDelete:CASCADE" json:"-"`
	Items     []OrderItem  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time    `json:"created_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "kiosk_order"
}

// ComputedTotal sums the stored line snapshots. Line prices are frozen at
// order time, so this never drifts with later catalog edits.
func (o *Order) ComputedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalPrice)
	}
	return total
}

// OrderItem is one order line. Exactly one of ProductID/ComboMealID is set.
type OrderItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index" json:"-"`
	ProductID   *int64          `json:"product_id,omitempty"`
	Product     *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	ComboMealID *int64          `json:"combomeal_id,omitempty"`
	ComboMeal   *ComboMeal      `gorm:"foreignKey:ComboMealID;constraint:OnDelete:CASCADE" json:"-"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_price"` // snapshot at order time
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName Specify table name
func (OrderItem) TableName() string {
	return "kiosk_order_item"
}
