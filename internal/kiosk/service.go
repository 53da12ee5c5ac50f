package kiosk

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cpearam/fastfood-kiosk/internal/domain"
)

// StockPolicy controls how a combo meal line deducts constituent stock.
type StockPolicy string

// StockPerConstituent deducts the line quantity from every constituent of
// the combo. With no recipe amounts in the data model this is the only
// meaningful policy; it is named here so the behavior is explicit at the
// call site rather than implied by the loop.
const StockPerConstituent StockPolicy = "per_constituent"

// OrderLine is one requested entry of an order placement.
// Exactly one of ProductID/ComboMealID must be set.
type OrderLine struct {
	ProductID   *int64 `json:"product_id,omitempty"`
	ComboMealID *int64 `json:"combomeal_id,omitempty"`
	Quantity    int    `json:"quantity"`
}

// OrderService validates and commits kiosk orders. All stock checks,
// decrements and line inserts for one order run in a single transaction:
// any failure leaves the catalog and the order tables untouched.
type OrderService struct {
	db     *gorm.DB
	policy StockPolicy
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db, policy: StockPerConstituent}
}

// PlaceOrder executes the order transaction for the given staff member.
// It returns the committed order with items and snapshot prices, or one of
// ValidationError, NotFoundError, InsufficientStockError.
func (s *OrderService) PlaceOrder(ctx context.Context, staffID int64, lines []OrderLine) (*domain.Order, error) {
	if s.policy != StockPerConstituent {
		return nil, errors.Errorf("unsupported stock policy %q", s.policy)
	}
	if len(lines) == 0 {
		return nil, NewValidationError("order must contain at least one item")
	}
	for _, line := range lines {
		if line.ProductID == nil && line.ComboMealID == nil {
			return nil, NewValidationError("either product_id or combomeal_id must be provided")
		}
		if line.ProductID != nil && line.ComboMealID != nil {
			return nil, NewValidationError("cannot provide both product_id and combomeal_id at the same time")
		}
		if line.Quantity <= 0 {
			return nil, NewValidationError("quantity must be a positive integer")
		}
	}

	order := &domain.Order{
		ID:        uuid.New(),
		StaffID:   staffID,
		CreatedAt: time.Now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var staff domain.StaffMember
		if err := tx.First(&staff, staffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "staff member", ID: staffID}
			}
			return errors.Wrap(err, "query staff member")
		}

		if err := tx.Create(order).Error; err != nil {
			return errors.Wrap(err, "create order")
		}

		for _, line := range lines {
			item, err := s.commitLine(tx, order, line)
			if err != nil {
				return err
			}
			order.Items = append(order.Items, *item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.Int64("staff_id", staffID),
		zap.Int("items", len(order.Items)),
		zap.String("total_price", order.ComputedTotal().String()),
	)
	return order, nil
}

// commitLine locks, checks and decrements stock for one line and inserts
// its order item with the snapshot price.
func (s *OrderService) commitLine(tx *gorm.DB, order *domain.Order, line OrderLine) (*domain.OrderItem, error) {
	if line.ProductID != nil {
		var p domain.Product
		if err := lockForUpdate(tx).First(&p, *line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Resource: "product", ID: *line.ProductID}
			}
			return nil, errors.Wrap(err, "query product")
		}
		if p.Stock < line.Quantity {
			return nil, &InsufficientStockError{ProductName: p.Name, Available: p.Stock}
		}
		if err := decrementStock(tx, p.ID, line.Quantity); err != nil {
			return nil, err
		}

		item := domain.OrderItem{
			OrderID:    order.ID,
			ProductID:  &p.ID,
			Quantity:   line.Quantity,
			TotalPrice: p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2),
			CreatedAt:  order.CreatedAt,
		}
		if err := tx.Create(&item).Error; err != nil {
			return nil, errors.Wrap(err, "create order item")
		}
		item.Product = &p
		return &item, nil
	}

	var combo domain.ComboMeal
	if err := tx.First(&combo, *line.ComboMealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "combo meal", ID: *line.ComboMealID}
		}
		return nil, errors.Wrap(err, "query combo meal")
	}

	// Lock constituents in id order so concurrent combo orders cannot
	// deadlock on each other.
	var products []domain.Product
	err := lockForUpdate(tx).
		Joins("JOIN combo_meal_products cmp ON cmp.product_id = products.id").
		Where("cmp.combo_meal_id = ?", combo.ID).
		Order("products.id").
		Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(err, "query combo constituents")
	}

	// Fail fast on the first short constituent before touching any stock.
	for _, p := range products {
		if p.Stock < line.Quantity {
			return nil, &InsufficientStockError{ProductName: p.Name, ComboName: combo.Name, Available: p.Stock}
		}
	}
	for _, p := range products {
		if err := decrementStock(tx, p.ID, line.Quantity); err != nil {
			return nil, err
		}
	}

	combo.Products = products
	item := domain.OrderItem{
		OrderID:     order.ID,
		ComboMealID: &combo.ID,
		Quantity:    line.Quantity,
		TotalPrice:  combo.ComputedPrice().Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2),
		CreatedAt:   order.CreatedAt,
	}
	if err := tx.Create(&item).Error; err != nil {
		return nil, errors.Wrap(err, "create order item")
	}
	item.ComboMeal = &combo
	return &item, nil
}

// ReassignStaff moves an existing order to another staff member. Committed
// line snapshots are immutable, so this is the only supported mutation.
func (s *OrderService) ReassignStaff(ctx context.Context, orderID uuid.UUID, staffID int64) (*domain.Order, error) {
	var staff domain.StaffMember
	if err := s.db.WithContext(ctx).First(&staff, staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "staff member", ID: staffID}
		}
		return nil, errors.Wrap(err, "query staff member")
	}

	res := s.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", orderID).Update("staff_id", staffID)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update order")
	}
	if res.RowsAffected == 0 {
		return nil, &NotFoundError{Resource: "order", ID: orderID}
	}
	return NewGormOrderRepository(s.db).GetOrder(ctx, orderID)
}

func decrementStock(tx *gorm.DB, productID int64, qty int) error {
	err := tx.Model(&domain.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock - ?", qty)).Error
	return errors.Wrap(err, "decrement stock")
}

// lockForUpdate takes a row lock on postgres. SQLite rejects the FOR UPDATE
// syntax and serializes writers on its own, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
