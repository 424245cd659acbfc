package service

import (
	"context"
	"testing"

	"rasosehat-backend/internal/model"
	"rasosehat-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAlwaysBuyer(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	created, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Budi",
		Email:    "budi@contoh.id",
		Password: "rahasia123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleBuyer, created.Role)

	// The stored password is hashed, never the raw value.
	var stored model.User
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	assert.NotEqual(t, "rahasia123", stored.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Budi", Email: "budi@contoh.id", Password: "rahasia123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Name: "Budi Lain", Email: "Budi@Contoh.id", Password: "rahasia123"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	t.Setenv("JWT_SECRET", "rahasia-uji")
	created, err := svc.Register(ctx, RegisterRequest{Name: "Budi", Email: "budi@contoh.id", Password: "rahasia123"})
	require.NoError(t, err)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		resp, err := svc.Login(ctx, LoginRequest{Email: "budi@contoh.id", Password: "rahasia123"})
		require.NoError(t, err)
		require.NotEmpty(t, resp.Token)

		parsed, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
			return []byte("rahasia-uji"), nil
		})
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, created.ID.String(), claims["sub"])
		assert.Equal(t, model.RoleBuyer, claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "budi@contoh.id", Password: "salah"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "tidakada@contoh.id", Password: "rahasia123"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUpdateProfilePartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterRequest{Name: "Budi", Email: "budi@contoh.id", Phone: "0811", Password: "rahasia123"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, created.ID.String(), UpdateProfileRequest{Phone: "0812"})
	require.NoError(t, err)
	assert.Equal(t, "Budi", updated.Name)
	assert.Equal(t, "0812", updated.Phone)
}
