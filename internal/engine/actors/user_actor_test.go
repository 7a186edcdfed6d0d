package actors

import (
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func spawnUserActor(system *actor.ActorSystem, store database.Store) *actor.PID {
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewUserActor(store, testJWTSecret, utils.NewMetricsCollector())
	})
	return system.Root.Spawn(props)
}

func TestUserRegistrationAndLogin(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnUserActor(system, store)

	// Register
	result := request(t, system, pid, &RegisterUserMsg{
		Username: "testuser",
		Email:    "Test@Example.com",
		Password: "password123",
	})
	auth, ok := result.(*AuthResponse)
	require.True(t, ok, "expected an auth response, got %T: %v", result, result)
	assert.Equal(t, "testuser", auth.Username)
	assert.Equal(t, "test@example.com", auth.Email)
	assert.NotEmpty(t, auth.Token)

	claims, err := middleware.ValidateToken(auth.Token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, auth.ID, claims.UserID)

	// Duplicate email
	result = request(t, system, pid, &RegisterUserMsg{
		Username: "other",
		Email:    "test@example.com",
		Password: "password456",
	})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "expected an error, got %T", result)
	assert.Equal(t, utils.ErrUserAlreadyExists, appErr.Code)

	// Login
	result = request(t, system, pid, &LoginMsg{
		Email:    "test@example.com",
		Password: "password123",
	})
	login, ok := result.(*AuthResponse)
	require.True(t, ok, "expected an auth response, got %T: %v", result, result)
	assert.Equal(t, auth.ID, login.ID)
	assert.NotEmpty(t, login.Token)

	// Wrong password
	result = request(t, system, pid, &LoginMsg{
		Email:    "test@example.com",
		Password: "wrongpassword",
	})
	appErr, ok = result.(*utils.AppError)
	require.True(t, ok, "expected an error, got %T", result)
	assert.Equal(t, utils.ErrInvalidCredentials, appErr.Code)

	// Unknown email gets the same error as a wrong password.
	result = request(t, system, pid, &LoginMsg{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	appErr, ok = result.(*utils.AppError)
	require.True(t, ok, "expected an error, got %T", result)
	assert.Equal(t, utils.ErrInvalidCredentials, appErr.Code)
}

func TestUserRegistrationValidation(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnUserActor(system, store)

	cases := []struct {
		name string
		msg  *RegisterUserMsg
	}{
		{"missing username", &RegisterUserMsg{Email: "a@b.com", Password: "password123"}},
		{"bad email", &RegisterUserMsg{Username: "u", Email: "not-an-email", Password: "password123"}},
		{"short password", &RegisterUserMsg{Username: "u", Email: "a@b.com", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := request(t, system, pid, tc.msg)
			appErr, ok := result.(*utils.AppError)
			require.True(t, ok, "expected an error, got %T: %v", result, result)
			assert.Equal(t, utils.ErrInvalidInput, appErr.Code)
		})
	}
}

func TestGetUserProfile(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnUserActor(system, store)

	auth := request(t, system, pid, &RegisterUserMsg{
		Username: "profileuser",
		Email:    "profile@example.com",
		Password: "password123",
	}).(*AuthResponse)

	result := request(t, system, pid, &GetUserProfileMsg{UserID: auth.ID})
	user, ok := result.(*models.User)
	require.True(t, ok, "expected a user, got %T: %v", result, result)
	assert.Equal(t, "profileuser", user.Username)
}
