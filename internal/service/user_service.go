package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bazi-api/internal/domain"
	"github.com/phrazzld/bazi-api/internal/platform/logger"
	"github.com/phrazzld/bazi-api/internal/service/auth"
	"github.com/phrazzld/bazi-api/internal/store"
)

// UserService registers and authenticates users.
type UserService interface {
	// Register creates a user. Returns store.ErrEmailExists for a taken
	// email and domain validation errors for bad input.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Authenticate returns the user for valid credentials, or
	// auth.ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

type userService struct {
	users    store.UserStore
	verifier auth.PasswordVerifier
	logger   *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users store.UserStore, verifier auth.PasswordVerifier, logger *slog.Logger) (UserService, error) {
	if users == nil {
		return nil, fmt.Errorf("user store cannot be nil")
	}
	if verifier == nil {
		return nil, fmt.Errorf("password verifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		users:    users,
		verifier: verifier,
		logger:   logger.With(slog.String("component", "user_service")),
	}, nil
}

func (s *userService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		if !errors.Is(err, store.ErrEmailExists) {
			log.Error("failed to register user", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		log.Error("failed to look up user for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("password mismatch", slog.String("user_id", user.ID.String()))
		return nil, auth.ErrInvalidCredentials
	}
	return user, nil
}
