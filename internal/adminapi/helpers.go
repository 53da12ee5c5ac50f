package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cpearam/fastfood-kiosk/internal/kiosk"
	"github.com/cpearam/fastfood-kiosk/internal/webserver"
)

// GetDB returns the request-scoped gorm handle injected by the webserver.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.DBContextKey).(*gorm.DB)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code": 0,
		"data": data,
	})
}

func paged(c echo.Context, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code":      0,
		"data":      data,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	body := map[string]interface{}{
		"code":       status,
		"error_code": code,
		"message":    message,
	}
	if details != nil {
		body["details"] = details
	}
	return c.JSON(status, body)
}

// failDomain maps kiosk error types onto the response envelope. Unknown
// errors are treated as persistence failures.
func failDomain(c echo.Context, err error) error {
	switch e := err.(type) {
	case *kiosk.ValidationError:
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", e.Message, nil)
	case *kiosk.NotFoundError:
		return fail(c, http.StatusNotFound, "NOT_FOUND", e.Error(), nil)
	case *kiosk.InsufficientStockError:
		return fail(c, http.StatusConflict, "INSUFFICIENT_STOCK", e.Error(), map[string]interface{}{
			"product":   e.ProductName,
			"available": e.Available,
		})
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Unexpected persistence failure", err.Error())
	}
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize = 20
	if ps, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
