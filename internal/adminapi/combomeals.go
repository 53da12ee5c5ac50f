package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cpearam/fastfood-kiosk/internal/domain"
	"github.com/cpearam/fastfood-kiosk/internal/kiosk"
	"github.com/cpearam/fastfood-kiosk/internal/webserver"
)

type comboMealPayload struct {
	Name       string  `json:"name"`
	Discount   *int    `json:"discount"`
	ProductIDs []int64 `json:"product_ids"`
}

func registerComboMealRoutes() {
	webserver.ApiGET("/combomeals", listComboMeals)
	webserver.ApiGET("/combomeals/:id", getComboMeal)
	webserver.ApiPOST("/combomeals", createComboMeal)
	webserver.ApiPUT("/combomeals/:id", updateComboMeal)
	webserver.ApiDELETE("/combomeals/:id", deleteComboMeal)
}

func listComboMeals(c echo.Context) error {
	page, pageSize := parsePagination(c)

	repo := kiosk.NewGormCatalogRepository(GetDB(c))
	meals, total, err := repo.ListComboMeals(c.Request().Context(), page, pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query combo meals", err.Error())
	}
	return paged(c, kiosk.NewComboMealViews(meals), total, page, pageSize)
}

func getComboMeal(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid combo meal ID", nil)
	}
	repo := kiosk.NewGormCatalogRepository(GetDB(c))
	m, err := repo.GetComboMeal(c.Request().Context(), id)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, kiosk.NewComboMealView(m))
}

// resolveComboProducts validates discount range and the product id set.
func resolveComboProducts(c echo.Context, payload *comboMealPayload) ([]domain.Product, error) {
	if payload.Discount == nil || *payload.Discount < 0 || *payload.Discount > 100 {
		return nil, kiosk.NewValidationError("discount must be between 0 and 100")
	}
	if len(payload.ProductIDs) == 0 {
		return nil, kiosk.NewValidationError("product_ids must contain at least one product")
	}
	repo := kiosk.NewGormCatalogRepository(GetDB(c))
	products, err := repo.ProductsByIDs(c.Request().Context(), payload.ProductIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(uniqueIDs(payload.ProductIDs)) {
		return nil, kiosk.NewValidationError("product_ids contains unknown products")
	}
	return products, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func createComboMeal(c echo.Context) error {
	var payload comboMealPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse combo meal", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Combo meal name is required", nil)
	}

	var dup domain.ComboMeal
	if err := GetDB(c).Where("name = ?", payload.Name).First(&dup).Error; err == nil {
		return fail(c, http.StatusConflict, "DUPLICATE_COMBO", "Combo meal with this name already exists", nil)
	}

	products, err := resolveComboProducts(c, &payload)
	if err != nil {
		return failDomain(c, err)
	}

	now := time.Now()
	m := domain.ComboMeal{
		Name:      payload.Name,
		Discount:  *payload.Discount,
		Products:  products,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&m).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create combo meal", err.Error())
	}
	return ok(c, kiosk.NewComboMealView(&m))
}

func updateComboMeal(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid combo meal ID", nil)
	}
	var payload comboMealPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse combo meal", err.Error())
	}

	var m domain.ComboMeal
	if err := GetDB(c).Where("id = ?", id).First(&m).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Combo meal not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query combo meal", err.Error())
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(payload.Name); name != "" && name != m.Name {
		var dup domain.ComboMeal
		if err := GetDB(c).Where("name = ? AND id != ?", name, id).First(&dup).Error; err == nil {
			return fail(c, http.StatusConflict, "DUPLICATE_COMBO", "Another combo meal with this name already exists", nil)
		}
		updates["name"] = name
	}
	if payload.Discount != nil {
		if *payload.Discount < 0 || *payload.Discount > 100 {
			return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "discount must be between 0 and 100", nil)
		}
		updates["discount"] = *payload.Discount
	}
	updates["updated_at"] = time.Now()

	if err := GetDB(c).Model(&m).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update combo meal", err.Error())
	}

	// product_ids replaces the association set entirely, never merges
	if payload.ProductIDs != nil {
		if payload.Discount == nil {
			d := m.Discount
			payload.Discount = &d
		}
		products, err := resolveComboProducts(c, &payload)
		if err != nil {
			return failDomain(c, err)
		}
		repo := kiosk.NewGormCatalogRepository(GetDB(c))
		if err := repo.ReplaceComboProducts(c.Request().Context(), &m, products); err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update combo products", err.Error())
		}
	}

	repo := kiosk.NewGormCatalogRepository(GetDB(c))
	fresh, err := repo.GetComboMeal(c.Request().Context(), id)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, kiosk.NewComboMealView(fresh))
}

func deleteComboMeal(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid combo meal ID", nil)
	}
	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM combo_meal_products WHERE combo_meal_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("combo_meal_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.ComboMeal{}).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete combo meal", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
