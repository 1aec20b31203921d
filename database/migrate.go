package database

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/lunch-vote/config"
	"github.com/yeremiapane/lunch-vote/models"
	"github.com/yeremiapane/lunch-vote/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migrate creates or updates every table, index and foreign key.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.EmployeeProfile{},
		&models.Restaurant{},
		&models.Menu{},
		&models.Vote{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

// SeedAdmin creates the ADMIN_USERNAME account once. It is a basic account:
// it can manage restaurants and menus but holds no employee profile.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		utils.InfoLogger.Println("Skip seeding admin: ADMIN_USERNAME/ADMIN_PASSWORD not set")
		return nil
	}

	var existing models.User
	err := db.Where("username = ?", cfg.AdminUsername).First(&existing).Error
	if err == nil {
		utils.InfoLogger.Printf("Admin already exists: %s", cfg.AdminUsername)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := models.User{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: string(hashed),
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	utils.InfoLogger.Printf("Seeded admin user: %s", admin.Username)
	return nil
}
