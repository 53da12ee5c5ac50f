package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cpearam/fastfood-kiosk/internal/domain"
	"github.com/cpearam/fastfood-kiosk/internal/webserver"
	"github.com/cpearam/fastfood-kiosk/pkg/common"
)

func registerStaffRoutes() {
	webserver.ApiGET("/staff", listStaff)
	webserver.ApiGET("/staff/:id", getStaff)
	webserver.ApiPOST("/staff", createStaff)
	webserver.ApiPUT("/staff/:id", updateStaff)
	webserver.ApiDELETE("/staff/:id", deleteStaff)
}

type staffPayload struct {
	Name     string `json:"name"`
	Branch   string `json:"branch"`
	Position string `json:"position"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func listStaff(c echo.Context) error {
	page, pageSize := parsePagination(c)

	base := GetDB(c).Model(&domain.StaffMember{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if strings.EqualFold(base.Name(), "postgres") {
			base = base.Where("name ILIKE ?", "%"+q+"%")
		} else {
			base = base.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query staff", err.Error())
	}

	var members []domain.StaffMember
	if err := base.Order("id DESC").Offset((page-1)*pageSize).Limit(pageSize).Find(&members).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query staff", err.Error())
	}
	return paged(c, members, total, page, pageSize)
}

func getStaff(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid staff ID", nil)
	}
	var m domain.StaffMember
	if err := GetDB(c).Where("id = ?", id).First(&m).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "STAFF_NOT_FOUND", "Staff member not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query staff member", err.Error())
	}
	return ok(c, m)
}

func createStaff(c echo.Context) error {
	var payload staffPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse staff parameters", nil)
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Username = strings.TrimSpace(payload.Username)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Staff name is required", nil)
	}
	if payload.Username == "" {
		return fail(c, http.StatusBadRequest, "MISSING_USERNAME", "Username is required", nil)
	}
	if payload.Position == "" {
		payload.Position = domain.PositionStaff
	}
	if !domain.ValidPosition(payload.Position) {
		return fail(c, http.StatusBadRequest, "INVALID_POSITION", "Position must be one of manager, staff, cashier", nil)
	}

	var dup domain.StaffMember
	if err := GetDB(c).Where("username = ?", payload.Username).First(&dup).Error; err == nil {
		return fail(c, http.StatusConflict, "DUPLICATE_STAFF", "Staff member with this username already exists", nil)
	}

	m := domain.StaffMember{
		ID:        common.UUIDint64(),
		Name:      payload.Name,
		Branch:    payload.Branch,
		Position:  payload.Position,
		Username:  payload.Username,
		Email:     payload.Email,
		Password:  common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt()),
		Status:    common.ENABLED,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := GetDB(c).Create(&m).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create staff member", err.Error())
	}
	return ok(c, m)
}

func updateStaff(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid staff ID", nil)
	}
	var payload staffPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse staff parameters", nil)
	}
	var m domain.StaffMember
	if err := GetDB(c).Where("id = ?", id).First(&m).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "STAFF_NOT_FOUND", "Staff member not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query staff member", err.Error())
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(payload.Name); name != "" {
		updates["name"] = name
	}
	if payload.Branch != "" {
		updates["branch"] = payload.Branch
	}
	if payload.Position != "" {
		if !domain.ValidPosition(payload.Position) {
			return fail(c, http.StatusBadRequest, "INVALID_POSITION", "Position must be one of manager, staff, cashier", nil)
		}
		updates["position"] = payload.Position
	}
	if username := strings.TrimSpace(payload.Username); username != "" {
		var dup domain.StaffMember
		if err := GetDB(c).Where("username = ? AND id != ?", username, id).First(&dup).Error; err == nil {
			return fail(c, http.StatusConflict, "DUPLICATE_STAFF", "Another staff member with this username already exists", nil)
		}
		updates["username"] = username
	}
	if payload.Email != "" {
		updates["email"] = payload.Email
	}
	if payload.Password != "" {
		updates["password"] = common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt())
	}
	updates["updated_at"] = time.Now()

	if err := GetDB(c).Model(&m).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update staff member", err.Error())
	}
	if err := GetDB(c).Where("id = ?", id).First(&m).Error; err != nil {
		return fail(c, http.StatusNotFound, "STAFF_NOT_FOUND", "Staff member not found", nil)
	}
	return ok(c, m)
}

func deleteStaff(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid staff ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.StaffMember{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete staff member", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
