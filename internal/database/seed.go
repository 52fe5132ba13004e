package database

import (
	"errors"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed ensures the default data the application depends on: one settings row
// and an initial admin account.
func Seed(db *gorm.DB) error {
	if err := seedSettings(db); err != nil {
		return err
	}
	return seedAdmin(db)
}

func seedSettings(db *gorm.DB) error {
	var setting models.Setting
	err := db.First(&setting).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	zap.S().Info("seeding default settings")
	return db.Create(models.DefaultSetting()).Error
}

func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Firstname: "Admin",
		Lastname:  "User",
		Email:     "admin@chiifykitchen.com",
		Password:  string(hash),
		Role:      string(models.RoleAdmin),
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	zap.S().Infow("seeded default admin user", "email", admin.Email)
	return nil
}
