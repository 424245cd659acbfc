package service

import (
	"testing"

	"rasosehat-backend/internal/database"
	"rasosehat-backend/internal/hydrate"
	"rasosehat-backend/internal/model"
	"rasosehat-backend/internal/repository"
	"rasosehat-backend/pkg/cache"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, email, role string) *model.User {
	t.Helper()
	user := model.User{
		Name:     name,
		Email:    email,
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createRestaurant(t *testing.T, db *gorm.DB, mutate func(*model.Restaurant)) *model.Restaurant {
	t.Helper()
	restaurant := model.Restaurant{
		Name:    "Warung Sehat",
		Address: "Jl. Melati 1",
		Status:  model.StatusPending,
	}
	if mutate != nil {
		mutate(&restaurant)
	}
	require.NoError(t, db.Create(&restaurant).Error)
	return &restaurant
}

func hydratorForTests() hydrate.Config {
	return hydrate.Config{StorageOrigin: "https://files.example.test", Bucket: "foto"}
}

func newVerificationFixture(t *testing.T, db *gorm.DB) VerificationService {
	t.Helper()
	notifications := NewNotificationService(repository.NewNotificationRepository(db), nil)
	return NewVerificationService(
		repository.NewRestaurantRepository(db),
		repository.NewMenuRepository(db),
		repository.NewUserRepository(db),
		repository.NewVerificationRepository(db),
		notifications,
		nil,
		cache.NewMemory(),
		hydratorForTests(),
	)
}
