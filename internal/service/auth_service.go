package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/graniteware/storefront/internal/domain"
	"github.com/graniteware/storefront/internal/repository"
	"github.com/graniteware/storefront/pkg/errors"
)

type AuthService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		logger: logger,
	}
}

// Authenticate verifies an email/password pair against the stored bcrypt
// hash. Unknown emails and wrong passwords report the same error.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); ok {
			return nil, &errors.ErrUnauthorized{Message: "invalid credentials"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, &errors.ErrUnauthorized{Message: "invalid credentials"}
	}

	return user, nil
}
