package concert_test

import (
	"context"
	"testing"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	concert "github.com/MorningMores/concert-backend"
)

// MockUserAccounts implements concert.UserAccounts for testing
type MockUserAccounts struct {
	mock.Mock
}

func (m *MockUserAccounts) GetByUsername(ctx context.Context, username string, criteria ...repository.SelectCriteria) (*concert.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*concert.User)
	return user, args.Error(1)
}

func (m *MockUserAccounts) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*concert.User, error) {
	args := m.Called(ctx, identifier)
	user, _ := args.Get(0).(*concert.User)
	return user, args.Error(1)
}

func (m *MockUserAccounts) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserAccounts) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserAccounts) Register(ctx context.Context, user *concert.User) (*concert.User, error) {
	args := m.Called(ctx, user)
	record, _ := args.Get(0).(*concert.User)
	return record, args.Error(1)
}

func (m *MockUserAccounts) Update(ctx context.Context, record *concert.User, criteria ...repository.UpdateCriteria) (*concert.User, error) {
	args := m.Called(ctx, record)
	user, _ := args.Get(0).(*concert.User)
	return user, args.Error(1)
}

func newAuthService(t *testing.T, users *MockUserAccounts) *concert.AuthService {
	t.Helper()

	tokens, err := concert.NewTokenService(testSigningKey, time.Hour, "test-issuer", nil)
	assert.NoError(t, err)

	return concert.NewAuthService(users, tokens, nil)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	input := concert.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "super-secret-pass",
		Name:     "Alice",
	}

	t.Run("creates the account and mints a token", func(t *testing.T) {
		users := &MockUserAccounts{}
		users.On("ExistsByUsername", ctx, "alice").Return(false, nil)
		users.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil)
		users.On("Register", ctx, mock.AnythingOfType("*concert.User")).
			Return(&concert.User{
				ID:       uuid.New(),
				Username: "alice",
				Email:    "alice@example.com",
			}, nil)

		service := newAuthService(t, users)

		result, err := service.Register(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, "alice", result.Username)
		assert.NotEmpty(t, result.Token)

		registered := users.Calls[2].Arguments.Get(1).(*concert.User)
		assert.NotEqual(t, "super-secret-pass", registered.PasswordHash)
		assert.NoError(t, concert.ComparePasswordAndHash("super-secret-pass", registered.PasswordHash))

		users.AssertExpectations(t)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		users := &MockUserAccounts{}
		users.On("ExistsByUsername", ctx, "alice").Return(true, nil)

		service := newAuthService(t, users)

		result, err := service.Register(ctx, input)

		assert.Nil(t, result)
		assert.ErrorContains(t, err, "Username is already taken")
		users.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		users := &MockUserAccounts{}
		users.On("ExistsByUsername", ctx, "alice").Return(false, nil)
		users.On("ExistsByEmail", ctx, "alice@example.com").Return(true, nil)

		service := newAuthService(t, users)

		result, err := service.Register(ctx, input)

		assert.Nil(t, result)
		assert.ErrorContains(t, err, "Email is already in use")
		users.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := concert.HashPassword("super-secret-pass")
	assert.NoError(t, err)

	account := &concert.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
	}

	t.Run("exchanges valid credentials for a token", func(t *testing.T) {
		users := &MockUserAccounts{}
		users.On("GetByIdentifier", ctx, "alice").Return(account, nil)

		service := newAuthService(t, users)

		result, err := service.Login(ctx, "alice", "super-secret-pass")

		assert.NoError(t, err)
		assert.Equal(t, "alice", result.Username)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		users := &MockUserAccounts{}
		users.On("GetByIdentifier", ctx, "alice").Return(account, nil)

		service := newAuthService(t, users)

		result, err := service.Login(ctx, "alice", "wrong-password")

		assert.Nil(t, result)
		assert.ErrorContains(t, err, "Invalid username/email or password")
	})

	t.Run("masks an unknown identifier behind the same failure", func(t *testing.T) {
		users := &MockUserAccounts{}
		users.On("GetByIdentifier", ctx, "ghost").Return(nil, repository.NewRecordNotFound())

		service := newAuthService(t, users)

		result, err := service.Login(ctx, "ghost", "whatever-pass")

		assert.Nil(t, result)
		assert.ErrorContains(t, err, "Invalid username/email or password")
	})
}

func TestAuthService_Profile(t *testing.T) {
	ctx := context.Background()

	t.Run("loads the principal's account", func(t *testing.T) {
		users := &MockUserAccounts{}
		users.On("GetByUsername", ctx, "alice").Return(&concert.User{Username: "alice"}, nil)

		service := newAuthService(t, users)

		user, err := service.Profile(ctx, "alice")

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("maps a missing account to not found", func(t *testing.T) {
		users := &MockUserAccounts{}
		users.On("GetByUsername", ctx, "ghost").Return(nil, repository.NewRecordNotFound())

		service := newAuthService(t, users)

		user, err := service.Profile(ctx, "ghost")

		assert.Nil(t, user)
		assert.True(t, concert.IsNotFoundError(err))
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("applies the editable fields", func(t *testing.T) {
		users := &MockUserAccounts{}
		users.On("GetByUsername", ctx, "alice").
			Return(&concert.User{Username: "alice", ProfilePhoto: "old.png"}, nil)
		users.On("Update", ctx, mock.AnythingOfType("*concert.User")).
			Return(&concert.User{Username: "alice", City: "Bangkok"}, nil)

		service := newAuthService(t, users)

		user, err := service.UpdateProfile(ctx, "alice", concert.UpdateProfileInput{
			Name: "Alice",
			City: "Bangkok",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Bangkok", user.City)

		updated := users.Calls[1].Arguments.Get(1).(*concert.User)
		assert.Equal(t, "Alice", updated.Name)
		assert.Equal(t, "Bangkok", updated.City)
		// An empty photo in the payload keeps the stored one.
		assert.Equal(t, "old.png", updated.ProfilePhoto)
	})
}
