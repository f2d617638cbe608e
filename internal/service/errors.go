package service

import "errors"

var (
	// ErrEmailTaken is returned by Register when the email is already
	// registered.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials is returned by Authenticate for both an
	// unknown email and a wrong password. The two cases are deliberately
	// indistinguishable so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
