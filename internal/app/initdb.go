package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cpearam/fastfood-kiosk/config"
	"github.com/cpearam/fastfood-kiosk/internal/domain"
	"github.com/cpearam/fastfood-kiosk/pkg/common"
)

func getDatabase(cfg config.DBConfig) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name, time.Local.String())

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConn)
	sqlDB.SetMaxIdleConns(cfg.IdleConn)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db
}

// checkSuper ensures the default manager account exists and is usable.
func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "kioskd"

	hashedPassword := common.Sha256HashWithSalt(defaultPassword, common.GetSecretSalt())

	var member domain.StaffMember
	err := a.gormDB.Where("username = ?", superUsername).First(&member).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.StaffMember{
			ID:        common.UUIDint64(),
			Name:      "administrator",
			Branch:    "head office",
			Position:  domain.PositionManager,
			Username:  superUsername,
			Email:     "N/A",
			Password:  hashedPassword,
			Status:    common.ENABLED,
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default manager account", zap.Error(err))
		} else {
			zap.L().Info("initialized default manager account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query default manager account", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(member.Password) == ""
	resetPosition := !strings.EqualFold(member.Position, domain.PositionManager)
	resetStatus := !strings.EqualFold(member.Status, common.ENABLED)

	if !resetPassword && !resetPosition && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetPosition {
		updates["position"] = domain.PositionManager
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.StaffMember{}).Where("id = ?", member.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair default manager account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default manager account",
		zap.String("username", superUsername),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("positionReset", resetPosition),
		zap.Bool("statusEnabled", resetStatus))
}

// checkProducts initializes a small demo catalog
func (a *Application) checkProducts() {
	defaultProducts := []domain.Product{
		{Name: "classic-burger", Price: decimal.NewFromFloat(5.50), Stock: 100},
		{Name: "fries-large", Price: decimal.NewFromFloat(2.80), Stock: 200},
		{Name: "soft-drink", Price: decimal.NewFromFloat(1.90), Stock: 300},
		{Name: "chicken-wrap", Price: decimal.NewFromFloat(4.20), Stock: 80},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("name", p.Name))
			}
		}
	}
}
