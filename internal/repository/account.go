// Package repository provides persistence implementations for account and
// task storage using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ds9759045455-stack/smart-scheduler/internal/models"
	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for a unique-constraint hit.
const uniqueViolation = "23505"

// PostgresAccountRepository implements account persistence against a
// PostgreSQL database.
type PostgresAccountRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAccountRepository creates a new PostgresAccountRepository with
// the given database connection. db must be a valid *sql.DB connected to a
// PostgreSQL instance.
func NewPostgresAccountRepository(db *sql.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{DB: db}
}

// CreateAccount inserts a new account row with the given email and password
// hash and returns the storage-assigned id.
//
// A unique-constraint violation on email is reported as ErrDuplicateEmail;
// the constraint itself is the sole duplicate-detection mechanism, there is
// no pre-check query. Any other failure is returned as a wrapped storage
// error so callers can tell the two apart.
func (r *PostgresAccountRepository) CreateAccount(ctx context.Context, email, passwordHash string) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO accounts (email, password_hash) VALUES ($1, $2) RETURNING id`,
		email, passwordHash,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert account: %w", err)
	}
	return id, nil
}

// AccountByEmail fetches the account with the exact given email.
// Returns ErrAccountNotFound when no row matches.
func (r *PostgresAccountRepository) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acc models.Account
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, email, password_hash FROM accounts WHERE email = $1`,
		email,
	).Scan(&acc.ID, &acc.Email, &acc.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select account: %w", err)
	}
	return &acc, nil
}
