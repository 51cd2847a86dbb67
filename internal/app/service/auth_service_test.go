package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/repository"
	"github.com/sweetcrumb/cakeshop-backend/internal/db"
	"github.com/sweetcrumb/cakeshop-backend/pkg/util"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, "test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	service := setupAuthServiceTest(t)

	user, tokens, err := service.Register("new@example.com", "password123", "New User", "555-0100")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service := setupAuthServiceTest(t)

	_, _, err := service.Register("dup@example.com", "password123", "First", "")
	require.NoError(t, err)

	_, _, err = service.Register("dup@example.com", "password456", "Second", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	service := setupAuthServiceTest(t)

	_, _, err := service.Register("login@example.com", "password123", "Login User", "")
	require.NoError(t, err)

	user, tokens, err := service.Login("login@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "login@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	service := setupAuthServiceTest(t)

	_, _, err := service.Register("login2@example.com", "password123", "Login User", "")
	require.NoError(t, err)

	_, _, err = service.Login("login2@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	service := setupAuthServiceTest(t)

	_, _, err := service.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	service := setupAuthServiceTest(t)

	user, _, err := service.Register("profile@example.com", "password123", "Old Name", "555-0100")
	require.NoError(t, err)

	updated, err := service.UpdateProfile(user.ID, "New Name", "")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "555-0100", updated.Phone)
}

func TestAuthService_GetUserByID_NotFound(t *testing.T) {
	service := setupAuthServiceTest(t)

	_, err := service.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
