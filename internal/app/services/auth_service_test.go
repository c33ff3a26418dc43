package services

import (
	"context"
	"testing"
	"time"

	"github.com/kisinia/yosa/internal/app/models"
	"github.com/kisinia/yosa/internal/app/models/dto"
	"github.com/kisinia/yosa/internal/app/repositories/mocks"
	"github.com/kisinia/yosa/internal/pkg/apperrors"
	"github.com/kisinia/yosa/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "yosa-test",
	})
}

func TestRegisterAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and issues tokens", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testJWTService())

		userRepo.On("UsernameExists", ctx, "jamie").Return(false, nil)
		userRepo.On("EmailExists", ctx, "jamie@example.com").Return(false, nil)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Username == "jamie" && u.Role == models.RoleUser && u.Password != "Password1!"
		})).Return(nil)
		tokenRepo.On("Store", ctx, mock.Anything).Return(nil)

		tokens, err := svc.Register(ctx, &dto.RegisterRequest{
			Username: "jamie",
			Email:    "jamie@example.com",
			Password: "Password1!",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.Equal(t, "Bearer", tokens.TokenType)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testJWTService())

		userRepo.On("UsernameExists", ctx, "jamie").Return(true, nil)

		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Username: "jamie",
			Email:    "jamie@example.com",
			Password: "Password1!",
		})
		assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testJWTService())

		userRepo.On("UsernameExists", ctx, "jamie").Return(false, nil)
		userRepo.On("EmailExists", ctx, "jamie@example.com").Return(true, nil)

		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Username: "jamie",
			Email:    "jamie@example.com",
			Password: "Password1!",
		})
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hashed, err := auth.HashPassword("Password1!")
	if err != nil {
		t.Fatal(err)
	}

	existing := &models.User{
		ID:       7,
		Username: "jamie",
		Password: hashed,
		Role:     models.RoleUser,
	}

	t.Run("valid credentials", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testJWTService())

		userRepo.On("GetByUsername", ctx, "jamie").Return(existing, nil)
		userRepo.On("UpdateLastLogin", ctx, int64(7)).Return(nil)
		tokenRepo.On("Store", ctx, mock.Anything).Return(nil)

		tokens, err := svc.Login(ctx, &dto.LoginRequest{Username: "jamie", Password: "Password1!"})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testJWTService())

		userRepo.On("GetByUsername", ctx, "jamie").Return(existing, nil)

		_, err := svc.Login(ctx, &dto.LoginRequest{Username: "jamie", Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown user maps to invalid credentials", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testJWTService())

		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, apperrors.ErrUserNotFound)

		_, err := svc.Login(ctx, &dto.LoginRequest{Username: "ghost", Password: "whatever"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	user := &models.User{ID: 7, Username: "jamie", Role: models.RoleUser}

	t.Run("rotates the presented token", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testJWTService())

		stored := &models.RefreshToken{
			UserID:    7,
			Token:     "old-token",
			ExpiresAt: time.Now().Add(time.Hour),
		}
		tokenRepo.On("GetByToken", ctx, "old-token").Return(stored, nil)
		userRepo.On("GetByID", ctx, int64(7)).Return(user, nil)
		tokenRepo.On("Revoke", ctx, "old-token").Return(nil)
		tokenRepo.On("Store", ctx, mock.Anything).Return(nil)

		tokens, err := svc.RefreshToken(ctx, "old-token")
		require.NoError(t, err)
		assert.NotEqual(t, "old-token", tokens.RefreshToken)
		tokenRepo.AssertCalled(t, "Revoke", ctx, "old-token")
	})

	t.Run("replayed revoked token invalidates the whole family", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testJWTService())

		tokenRepo.On("GetByToken", ctx, "revoked").Return(&models.RefreshToken{
			UserID:    7,
			Token:     "revoked",
			ExpiresAt: time.Now().Add(time.Hour),
			Revoked:   true,
		}, nil)
		tokenRepo.On("RevokeAllForUser", ctx, int64(7)).Return(nil)

		_, err := svc.RefreshToken(ctx, "revoked")
		assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
		tokenRepo.AssertCalled(t, "RevokeAllForUser", ctx, int64(7))
	})

	t.Run("rejects expired token", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testJWTService())

		tokenRepo.On("GetByToken", ctx, "stale").Return(&models.RefreshToken{
			UserID:    7,
			Token:     "stale",
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil)

		_, err := svc.RefreshToken(ctx, "stale")
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("rejects unknown token", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testJWTService())

		tokenRepo.On("GetByToken", ctx, "missing").Return(nil, apperrors.ErrTokenNotFound)

		_, err := svc.RefreshToken(ctx, "missing")
		assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the token", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testJWTService())

		tokenRepo.On("Revoke", ctx, "live-token").Return(nil)

		assert.NoError(t, svc.Logout(ctx, "live-token"))
	})

	t.Run("unknown token maps to invalid token", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testJWTService())

		tokenRepo.On("Revoke", ctx, "missing").Return(apperrors.ErrTokenNotFound)

		assert.ErrorIs(t, svc.Logout(ctx, "missing"), apperrors.ErrTokenInvalid)
	})
}
