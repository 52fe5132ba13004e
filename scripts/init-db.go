package main

import (
	"fmt"
	"log"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/config"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/database"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/models"
)

// Drops and recreates every table, then reseeds the defaults. Development
// helper only.
func main() {
	fmt.Println("Initializing database...")

	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Setting{},
	)
	if err != nil {
		log.Printf("Warning: error dropping tables: %v", err)
	}

	fmt.Println("Recreating tables...")
	err = db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Setting{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if err := database.Seed(db); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	fmt.Println("Database initialized.")
}
