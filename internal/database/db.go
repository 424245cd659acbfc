package database

import (
	"log"

	"rasosehat-backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Migrate runs AutoMigrate for all core models. Split out so tests can run
// the same schema against their own driver.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Restaurant{},
		&model.RestaurantVerification{},
		&model.MenuCategory{},
		&model.Menu{},
		&model.MenuVerification{},
		&model.Ingredient{},
		&model.DietClaim{},
		&model.MenuIngredient{},
		&model.MenuDietClaim{},
		&model.Review{},
		&model.Notification{},
	)
}
