package adminapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/cpearam/fastfood-kiosk/internal/kiosk"
	"github.com/cpearam/fastfood-kiosk/internal/webserver"
)

type orderPayload struct {
	// Staff accepts both a numeric id and its string form
	Staff interface{}       `json:"staff"`
	Items []kiosk.OrderLine `json:"items"`
}

func registerOrderRoutes() {
	webserver.ApiGET("/orders", listOrders)
	webserver.ApiGET("/orders/:id", getOrder)
	webserver.ApiPOST("/orders", createOrder)
	webserver.ApiPUT("/orders/:id", updateOrder)
	webserver.ApiDELETE("/orders/:id", deleteOrder)
}

func listOrders(c echo.Context) error {
	page, pageSize := parsePagination(c)

	repo := kiosk.NewGormOrderRepository(GetDB(c))
	orders, total, err := repo.ListOrders(c.Request().Context(), page, pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	return paged(c, kiosk.NewOrderViews(orders), total, page, pageSize)
}

func getOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	repo := kiosk.NewGormOrderRepository(GetDB(c))
	order, err := repo.GetOrder(c.Request().Context(), id)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, kiosk.NewOrderView(order))
}

// createOrder runs the order placement transaction: stock checks, stock
// decrements and line snapshots commit together or not at all.
func createOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}
	staffID := cast.ToInt64(payload.Staff)
	if staffID == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "A valid staff id is required", nil)
	}

	svc := kiosk.NewOrderService(GetDB(c))
	order, err := svc.PlaceOrder(c.Request().Context(), staffID, payload.Items)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, kiosk.NewOrderView(order))
}

// updateOrder only supports reassigning the owning staff member; committed
// line snapshots never change.
func updateOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}
	staffID := cast.ToInt64(payload.Staff)
	if staffID == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "A valid staff id is required", nil)
	}

	svc := kiosk.NewOrderService(GetDB(c))
	order, err := svc.ReassignStaff(c.Request().Context(), id, staffID)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, kiosk.NewOrderView(order))
}

func deleteOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	repo := kiosk.NewGormOrderRepository(GetDB(c))
	if err := repo.Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete order", err.Error())
	}
	return ok(c, map[string]interface{}{"order_id": id})
}
