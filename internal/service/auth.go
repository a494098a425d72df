// Package service implements the application's use cases on top of the
// repository and analysis layers. Handlers stay thin; every multi-step
// saga (analyze, persist, bump stats, record activity) lives here.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sakif/astralearn/internal/apperror"
	"github.com/sakif/astralearn/internal/auth"
	"github.com/sakif/astralearn/internal/model"
	"github.com/sakif/astralearn/internal/repository"
)

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// AuthResult is returned by Register and Login: the public view of the
// user plus a signed access token.
type AuthResult struct {
	User  model.PublicUser `json:"user"`
	Token string           `json:"token"`
}

// AuthService handles registration, login and token-based lookup.
type AuthService struct {
	users      repository.UserRepository
	activities repository.ActivityRepository
	passwords  *auth.PasswordService
	tokens     *auth.TokenService
	logger     *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	activities repository.ActivityRepository,
	passwords *auth.PasswordService,
	tokens *auth.TokenService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		activities: activities,
		passwords:  passwords,
		tokens:     tokens,
		logger:     logger,
	}
}

// Register creates a new account. The stored password is a bcrypt hash,
// never the plaintext. A welcome activity is recorded so the ledger's
// first entry marks the account creation.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	// Pre-check gives a precise message; the repository still enforces
	// uniqueness for the race where two registrations interleave.
	if _, err := s.users.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, apperror.Conflict("username", "Username already exists")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{
		Username:  req.Username,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.activities.CreateActivity(ctx, &model.Activity{
		UserID:       user.ID,
		ActivityType: model.ActivityRegistration,
		Description:  "Welcome to AstraLearn! Account created successfully",
	}); err != nil {
		// The account exists; a missing welcome entry is not worth
		// failing the registration over.
		s.logger.Warn("failed to record registration activity", "user_id", user.ID, "error", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)

	return &AuthResult{User: user.Public(), Token: token}, nil
}

// Login verifies credentials and issues a token. An unknown username
// and a wrong password produce the same error so the response doesn't
// reveal which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if err := s.passwords.Verify(user.Password, password); err != nil {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user.Public(), Token: token}, nil
}

// UserFromToken resolves a bearer token to the public view of its user.
func (s *AuthService) UserFromToken(ctx context.Context, token string) (*model.PublicUser, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

func validateRegistration(req RegisterRequest) error {
	switch {
	case req.Username == "":
		return apperror.ValidationFailed("username", "Username is required")
	case req.Password == "":
		return apperror.ValidationFailed("password", "Password is required")
	case req.FirstName == "":
		return apperror.ValidationFailed("firstName", "First name is required")
	case req.LastName == "":
		return apperror.ValidationFailed("lastName", "Last name is required")
	case req.Email == "":
		return apperror.ValidationFailed("email", "Email is required")
	}
	return nil
}
