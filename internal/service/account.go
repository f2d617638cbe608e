// Package service provides business logic for account management and task
// ownership, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ds9759045455-stack/smart-scheduler/internal/models"
	"github.com/ds9759045455-stack/smart-scheduler/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AccountRepository defines the persistence operations required by the
// account service.
type AccountRepository interface {
	// CreateAccount inserts a new account row and returns its id.
	// A duplicate email is reported as repository.ErrDuplicateEmail.
	CreateAccount(ctx context.Context, email, passwordHash string) (int64, error)
	// AccountByEmail fetches an account by exact email match, or
	// repository.ErrAccountNotFound when no row matches.
	AccountByEmail(ctx context.Context, email string) (*models.Account, error)
}

// AccountService implements registration and authentication. Passwords are
// stored only as salted bcrypt hashes; the raw password never reaches the
// repository.
type AccountService struct {
	// repo performs the data-layer operations.
	repo AccountRepository
}

// NewAccountService constructs a new AccountService using the provided
// repository.
func NewAccountService(repo AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

// Register hashes rawPassword and creates a new account for email.
// Returns ErrEmailTaken when the email is already registered; any other
// failure surfaces as a wrapped storage error so callers can distinguish a
// duplicate from an unavailable store.
func (s *AccountService) Register(ctx context.Context, email, rawPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.repo.CreateAccount(ctx, email, string(hash))
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return ErrEmailTaken
	}
	return err
}

// Authenticate looks up the account by exact email and verifies rawPassword
// against the stored hash. It returns the account id on success. An unknown
// email and a wrong password both yield ErrInvalidCredentials; storage
// failures are returned as-is.
func (s *AccountService) Authenticate(ctx context.Context, email, rawPassword string) (int64, error) {
	acc, err := s.repo.AccountByEmail(ctx, email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return 0, ErrInvalidCredentials
	}
	if err != nil {
		return 0, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(rawPassword)); err != nil {
		return 0, ErrInvalidCredentials
	}
	return acc.ID, nil
}
