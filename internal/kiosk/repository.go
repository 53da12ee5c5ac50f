package kiosk

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cpearam/fastfood-kiosk/internal/domain"
)

// CatalogRepository provides read/write access to products and combo meals.
type CatalogRepository interface {
	// GetProduct retrieves a product by ID
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)

	// ProductsByIDs retrieves products matching the given IDs
	ProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)

	// GetComboMeal retrieves a combo meal with its constituents preloaded
	GetComboMeal(ctx context.Context, id int64) (*domain.ComboMeal, error)

	// ListComboMeals retrieves combo meals with constituents batch-loaded
	ListComboMeals(ctx context.Context, page, pageSize int) ([]domain.ComboMeal, int64, error)

	// ReplaceComboProducts replaces the full association set of a combo
	ReplaceComboProducts(ctx context.Context, combo *domain.ComboMeal, products []domain.Product) error
}

// OrderRepository provides read access to committed orders.
type OrderRepository interface {
	// GetOrder retrieves an order with its items and their references
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	// ListOrders retrieves orders with items batch-loaded
	ListOrders(ctx context.Context, page, pageSize int) ([]domain.Order, int64, error)

	// Delete removes an order; items cascade
	Delete(ctx context.Context, id uuid.UUID) error
}

// GormCatalogRepository is the GORM implementation of CatalogRepository
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "product", ID: id}
	}
	return &p, err
}

func (r *GormCatalogRepository) ProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *GormCatalogRepository) GetComboMeal(ctx context.Context, id int64) (*domain.ComboMeal, error) {
	var m domain.ComboMeal
	err := r.db.WithContext(ctx).Preload("Products").First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "combo meal", ID: id}
	}
	return &m, err
}

func (r *GormCatalogRepository) ListComboMeals(ctx context.Context, page, pageSize int) ([]domain.ComboMeal, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.ComboMeal{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Preload batches constituents in a single IN query per page
	var meals []domain.ComboMeal
	err := r.db.WithContext(ctx).
		Preload("Products").
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&meals).Error
	return meals, total, err
}

func (r *GormCatalogRepository) ReplaceComboProducts(ctx context.Context, combo *domain.ComboMeal, products []domain.Product) error {
	return r.db.WithContext(ctx).Model(combo).Association("Products").Replace(products)
}

// GormOrderRepository is the GORM implementation of OrderRepository
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.ComboMeal").
		First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "order", ID: id}
	}
	return &o, err
}

func (r *GormOrderRepository) ListOrders(ctx context.Context, page, pageSize int) ([]domain.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.ComboMeal").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	return orders, total, err
}

func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Order{}, "id = ?", id).Error
	})
}
