package db

import (
	"log"

	"wikitok/internal/config"
	"wikitok/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init opens the database and runs migrations. The handle is returned
// rather than stored in a package global; handlers receive it
// explicitly.
func Init(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=wikitok port=5432 sslmode=disable"
	}

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(database); err != nil {
		return nil, err
	}
	log.Println("Database migration completed")

	return database, nil
}

// Migrate creates or updates the schema. Split out so tests can run it
// against their own database.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Interaction{},
	)
}
