package kiosk

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cpearam/fastfood-kiosk/internal/domain"
)

// ComboMealView is the read-side shape of a combo meal: nested products plus
// the derived price and availability, computed at serialization time.
type ComboMealView struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Products    []domain.Product `json:"products"`
	Discount    int              `json:"discount"`
	Price       decimal.Decimal  `json:"price"`
	IsAvailable bool             `json:"is_available"`
}

func NewComboMealView(m *domain.ComboMeal) ComboMealView {
	products := m.Products
	if products == nil {
		products = []domain.Product{}
	}
	return ComboMealView{
		ID:          m.ID,
		Name:        m.Name,
		Products:    products,
		Discount:    m.Discount,
		Price:       m.ComputedPrice(),
		IsAvailable: m.Available(),
	}
}

func NewComboMealViews(meals []domain.ComboMeal) []ComboMealView {
	views := make([]ComboMealView, 0, len(meals))
	for i := range meals {
		views = append(views, NewComboMealView(&meals[i]))
	}
	return views
}

// OrderItemView resolves the referenced product or combo name next to the
// stored snapshot price.
type OrderItemView struct {
	ID          int64           `json:"id"`
	ProductID   *int64          `json:"product_id,omitempty"`
	ComboMealID *int64          `json:"combomeal_id,omitempty"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type OrderView struct {
	OrderID    uuid.UUID       `json:"order_id"`
	Staff      int64           `json:"staff,string"`
	Items      []OrderItemView `json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// NewOrderView shapes an order whose items carry their preloaded references.
func NewOrderView(o *domain.Order) OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		view := OrderItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ComboMealID: item.ComboMealID,
			Quantity:    item.Quantity,
			TotalPrice:  item.TotalPrice,
		}
		switch {
		case item.Product != nil:
			view.Name = item.Product.Name
		case item.ComboMeal != nil:
			view.Name = item.ComboMeal.Name
		}
		items = append(items, view)
	}
	return OrderView{
		OrderID:    o.ID,
		Staff:      o.StaffID,
		Items:      items,
		CreatedAt:  o.CreatedAt,
		TotalPrice: o.ComputedTotal(),
	}
}

func NewOrderViews(orders []domain.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, NewOrderView(&orders[i]))
	}
	return views
}
