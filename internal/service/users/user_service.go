// Package users implements the identity store: registration, login and the
// idempotent administrator bootstrap.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type UserService struct {
	repo   repository.UserRepository
	tokens *auth.Manager
}

func NewUserService(repo repository.UserRepository, tokens *auth.Manager) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// Register stores a new standard account and returns it with a fresh session
// token. The plaintext password never leaves this function.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	switch {
	case input.Name == "":
		return nil, "", fmt.Errorf("%w: name is required", domain.ErrValidation)
	case input.Email == "":
		return nil, "", fmt.Errorf("%w: email is required", domain.ErrValidation)
	case input.Password == "":
		return nil, "", fmt.Errorf("%w: password is required", domain.ErrValidation)
	case input.Phone == "":
		return nil, "", fmt.Errorf("%w: phone is required", domain.ErrValidation)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and mints a session token. Unknown email and
// wrong password yield the same error so accounts cannot be enumerated.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// EnsureAdmin creates the seeded administrator account if it does not exist
// yet. Safe to run on every boot.
func (s *UserService) EnsureAdmin(ctx context.Context, seed config.SeedConfig) error {
	if seed.AdminEmail == "" {
		return nil
	}

	_, err := s.repo.GetByEmail(ctx, seed.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(seed.AdminPassword)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Name:         seed.AdminName,
		Email:        seed.AdminEmail,
		PasswordHash: hash,
		Phone:        seed.AdminPhone,
		IsAdmin:      true,
	}
	if err := s.repo.Create(ctx, admin); err != nil && !errors.Is(err, domain.ErrDuplicateAccount) {
		return err
	}
	return nil
}

var _ UserUseCase = (*UserService)(nil)
