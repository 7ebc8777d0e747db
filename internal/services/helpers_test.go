package services

import (
	"testing"

	"github.com/dommaster/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// One in-memory SQLite database per connection; pin the pool to a
	// single connection so every query sees the same schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ServiceItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, confirmed bool) *models.User {
	t.Helper()

	user := models.User{
		Name:           "Test User",
		Email:          email,
		Phone:          "+70000000000",
		PasswordHash:   "x",
		Role:           models.RoleUser,
		EmailConfirmed: confirmed,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestService(t *testing.T, db *gorm.DB, name string, price int64, active bool) *models.ServiceItem {
	t.Helper()

	svc := models.ServiceItem{
		Name:        name,
		Description: name + " description",
		MinPrice:    price,
		Category:    "General",
		Icon:        "🔧",
		Active:      active,
	}
	require.NoError(t, db.Create(&svc).Error)
	// The column's default:true tag makes gorm substitute true for a
	// zero-value Active on insert; write the requested value explicitly.
	require.NoError(t, db.Model(&svc).UpdateColumn("active", active).Error)
	svc.Active = active
	return &svc
}
