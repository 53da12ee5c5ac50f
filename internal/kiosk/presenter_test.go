package kiosk

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cpearam/fastfood-kiosk/internal/domain"
)

func TestComboMealView_DerivedFields(t *testing.T) {
	db := newTestDB(t)
	prodA := mustProduct(t, db, "Product A", "5.00", 10)
	prodB := mustProduct(t, db, "Product B", "3.00", 0)
	combo := mustCombo(t, db, "Combo C", 20, prodA, prodB)

	repo := NewGormCatalogRepository(db)
	m, err := repo.GetComboMeal(context.Background(), combo.ID)
	if err != nil {
		t.Fatalf("GetComboMeal returned error: %v", err)
	}

	view := NewComboMealView(m)
	if !view.Price.Equal(decimal.RequireFromString("6.40")) {
		t.Errorf("expected combo price 6.40, got %s", view.Price)
	}
	if view.IsAvailable {
		t.Errorf("expected combo unavailable while a constituent has 0 stock")
	}
	if len(view.Products) != 2 {
		t.Errorf("expected 2 nested products, got %d", len(view.Products))
	}
}

func TestComboMealView_TracksLiveCatalog(t *testing.T) {
	db := newTestDB(t)
	prodA := mustProduct(t, db, "Product A", "5.00", 10)
	prodB := mustProduct(t, db, "Product B", "3.00", 0)
	combo := mustCombo(t, db, "Combo C", 20, prodA, prodB)

	repo := NewGormCatalogRepository(db)

	// restock B and raise A's price: the next read must reflect both
	if err := db.Model(&domain.Product{}).Where("id = ?", prodB.ID).Update("stock", 5).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Model(&domain.Product{}).Where("id = ?", prodA.ID).
		Update("price", decimal.RequireFromString("7.00")).Error; err != nil {
		t.Fatal(err)
	}

	m, err := repo.GetComboMeal(context.Background(), combo.ID)
	if err != nil {
		t.Fatalf("GetComboMeal returned error: %v", err)
	}
	view := NewComboMealView(m)
	if !view.Price.Equal(decimal.RequireFromString("8.00")) {
		t.Errorf("expected recomputed price 8.00, got %s", view.Price)
	}
	if !view.IsAvailable {
		t.Errorf("expected combo available after restock")
	}
}

func TestOrderView_ResolvesNamesAndTotal(t *testing.T) {
	db := newTestDB(t)
	staff := mustStaff(t, db, "alice")
	prodA := mustProduct(t, db, "Product A", "5.00", 10)
	prodB := mustProduct(t, db, "Product B", "3.00", 10)
	combo := mustCombo(t, db, "Combo C", 20, prodA, prodB)

	svc := NewOrderService(db)
	order, err := svc.PlaceOrder(context.Background(), staff.ID, []OrderLine{
		{ProductID: &prodA.ID, Quantity: 3},
		{ComboMealID: &combo.ID, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}

	repo := NewGormOrderRepository(db)
	reloaded, err := repo.GetOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("GetOrder returned error: %v", err)
	}

	view := NewOrderView(reloaded)
	if len(view.Items) != 2 {
		t.Fatalf("expected 2 item views, got %d", len(view.Items))
	}
	if view.Items[0].Name != "Product A" {
		t.Errorf("expected first line named Product A, got %q", view.Items[0].Name)
	}
	if view.Items[1].Name != "Combo C" {
		t.Errorf("expected second line named Combo C, got %q", view.Items[1].Name)
	}
	// 15.00 + 6.40
	if !view.TotalPrice.Equal(decimal.RequireFromString("21.40")) {
		t.Errorf("expected total 21.40, got %s", view.TotalPrice)
	}
	if view.Staff != staff.ID {
		t.Errorf("expected staff %d, got %d", staff.ID, view.Staff)
	}
}

func TestListOrders_BatchLoadsItems(t *testing.T) {
	db := newTestDB(t)
	staff := mustStaff(t, db, "alice")
	prodA := mustProduct(t, db, "Product A", "5.00", 100)

	svc := NewOrderService(db)
	for i := 0; i < 3; i++ {
		if _, err := svc.PlaceOrder(context.Background(), staff.ID, []OrderLine{
			{ProductID: &prodA.ID, Quantity: 1},
		}); err != nil {
			t.Fatalf("PlaceOrder returned error: %v", err)
		}
	}

	repo := NewGormOrderRepository(db)
	orders, total, err := repo.ListOrders(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("ListOrders returned error: %v", err)
	}
	if total != 3 || len(orders) != 3 {
		t.Fatalf("expected 3 orders, got total=%d len=%d", total, len(orders))
	}
	for _, o := range orders {
		if len(o.Items) != 1 {
			t.Errorf("order %s missing preloaded items", o.ID)
		}
		if o.Items[0].Product == nil || o.Items[0].Product.Name != "Product A" {
			t.Errorf("order %s missing preloaded product reference", o.ID)
		}
	}
}
