package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"feedback-be/internal/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeAdminRepo(), "test-secret", zap.NewNop())

	register := &domain.RegisterRequest{
		Email:    "admin@example.com",
		Password: "supersecret",
		Name:     "Admin",
	}

	resp, err := svc.Register(ctx, register)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.Admin.ID)
	assert.Empty(t, resp.Admin.PasswordHash, "hash must never leave the service")

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, register)
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("login with correct password", func(t *testing.T) {
		resp, err := svc.Login(ctx, &domain.LoginRequest{
			Email:    "admin@example.com",
			Password: "supersecret",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &domain.LoginRequest{
			Email:    "admin@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("login with unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &domain.LoginRequest{
			Email:    "nobody@example.com",
			Password: "supersecret",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestValidateToken(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeAdminRepo(), "test-secret", zap.NewNop())

	resp, err := svc.Register(ctx, &domain.RegisterRequest{
		Email:    "admin@example.com",
		Password: "supersecret",
		Name:     "Admin",
	})
	require.NoError(t, err)

	t.Run("valid token round trip", func(t *testing.T) {
		claims, err := svc.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.Admin.ID, claims.AdminID)
		assert.Equal(t, "admin@example.com", claims.Email)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewAuthService(newFakeAdminRepo(), "other-secret", zap.NewNop())
		_, err := other.ValidateToken(resp.Token)
		assert.Error(t, err)
	})
}
