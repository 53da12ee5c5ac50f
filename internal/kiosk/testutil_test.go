package kiosk

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cpearam/fastfood-kiosk/internal/domain"
	"github.com/cpearam/fastfood-kiosk/pkg/common"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	// sqlite has a single writer; one connection keeps concurrent
	// transactions queued instead of failing with lock errors
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(domain.Tables...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustStaff(t *testing.T, db *gorm.DB, name string) *domain.StaffMember {
	t.Helper()
	m := &domain.StaffMember{
		ID:       common.UUIDint64(),
		Name:     name,
		Branch:   "downtown",
		Position: domain.PositionCashier,
		Username: name,
		Status:   common.ENABLED,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("create staff: %v", err)
	}
	return m
}

func mustProduct(t *testing.T, db *gorm.DB, name, price string, stock int) *domain.Product {
	t.Helper()
	p := &domain.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func mustCombo(t *testing.T, db *gorm.DB, name string, discount int, products ...*domain.Product) *domain.ComboMeal {
	t.Helper()
	m := &domain.ComboMeal{Name: name, Discount: discount}
	for _, p := range products {
		m.Products = append(m.Products, *p)
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("create combo: %v", err)
	}
	return m
}

func productStock(t *testing.T, db *gorm.DB, id int64) int {
	t.Helper()
	var p domain.Product
	if err := db.First(&p, id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return p.Stock
}
