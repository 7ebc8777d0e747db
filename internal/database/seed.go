package database

import (
	"errors"
	"log/slog"

	"github.com/dommaster/backend/internal/config"
	"github.com/dommaster/backend/internal/models"
	"github.com/dommaster/backend/internal/security"
	"gorm.io/gorm"
)

var defaultServices = []models.ServiceItem{
	{Name: "Plumbing", Description: "Leaks, pipe replacement, fixture installation", MinPrice: 800, Category: "Plumbing", Icon: "🔧", Active: true},
	{Name: "Electrics", Description: "Wiring, sockets, lighting, fuse boards", MinPrice: 1000, Category: "Electrics", Icon: "💡", Active: true},
	{Name: "Furniture assembly", Description: "Flat-pack assembly and mounting", MinPrice: 600, Category: "Assembly", Icon: "🪑", Active: true},
	{Name: "Appliance repair", Description: "Washing machines, fridges, ovens", MinPrice: 1200, Category: "Appliances", Icon: "🧰", Active: true},
	{Name: "Painting and decorating", Description: "Walls, ceilings, wallpaper", MinPrice: 900, Category: "Decorating", Icon: "🎨", Active: true},
}

// Seed populates the default service catalog when the table is empty
// and ensures the configured admin account exists. Safe to run on
// every start.
func Seed(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.ServiceItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := db.Create(&defaultServices).Error; err != nil {
			return err
		}
		slog.Info("seeded default service catalog", "services", len(defaultServices))
	}

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:           "Administrator",
		Email:          cfg.AdminEmail,
		PasswordHash:   hash,
		Role:           models.RoleAdmin,
		EmailConfirmed: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	slog.Info("seeded admin account", "email", cfg.AdminEmail)
	return nil
}
