package concert

import (
	"context"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
)

// UserAccounts is the slice of the users repository the auth service needs.
type UserAccounts interface {
	GetByUsername(ctx context.Context, username string, criteria ...repository.SelectCriteria) (*User, error)
	GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Register(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, record *User, criteria ...repository.UpdateCriteria) (*User, error)
}

var _ UserAccounts = (Users)(nil)

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Name     string
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	Name         string
	Phone        string
	Address      string
	City         string
	Country      string
	Pincode      string
	Company      string
	Website      string
	ProfilePhoto string
}

// AuthResult is returned on successful registration or login. The token is
// the bearer credential for subsequent requests.
type AuthResult struct {
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// AuthService owns account registration, login, and profile access. It is
// the only place local tokens are minted.
type AuthService struct {
	users  UserAccounts
	tokens TokenService
	logger Logger
}

func NewAuthService(users UserAccounts, tokens TokenService, logger Logger) *AuthService {
	if logger == nil {
		logger = defLogger{}
	}
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates an account and mints its first token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if taken, err := s.users.ExistsByUsername(ctx, input.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, errors.New("Username is already taken", errors.CategoryConflict).
			WithCode(errors.CodeConflict)
	}

	if taken, err := s.users.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, errors.New("Email is already in use", errors.CategoryConflict).
			WithCode(errors.CodeConflict)
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Register(ctx, &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user.Username)
	if err != nil {
		return nil, err
	}

	s.logger.Info("registered user", "username", user.Username)

	return &AuthResult{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// Login verifies credentials and mints a fresh token. The same generic
// failure covers unknown identifiers and bad passwords.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	token, err := s.tokens.Generate(user.Username)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// Profile loads the account for the resolved principal.
func (s *AuthService) Profile(ctx context.Context, principal string) (*User, error) {
	user, err := s.users.GetByUsername(ctx, principal)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewNotFoundError("user")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the editable fields to the principal's account.
func (s *AuthService) UpdateProfile(ctx context.Context, principal string, input UpdateProfileInput) (*User, error) {
	user, err := s.Profile(ctx, principal)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Phone = input.Phone
	user.Address = input.Address
	user.City = input.City
	user.Country = input.Country
	user.Pincode = input.Pincode
	user.Company = input.Company
	user.Website = input.Website
	if input.ProfilePhoto != "" {
		user.ProfilePhoto = input.ProfilePhoto
	}

	return s.users.Update(ctx, user)
}

func invalidCredentials() error {
	return errors.New("Invalid username/email or password", errors.CategoryAuth).
		WithCode(errors.CodeUnauthorized)
}
