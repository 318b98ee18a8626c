package account

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates no account exists for the requested identity.
	ErrNotFound = errors.New("account not found")

	// ErrDuplicateIdentity indicates the identity already has a stored
	// account; the store enforces identity uniqueness.
	ErrDuplicateIdentity = errors.New("identity already has an account")
)

// Repository persists the identity -> account mapping.
type Repository interface {
	Add(ctx context.Context, account Account) error
	Get(ctx context.Context, identity string) (Account, error)
	Ping(ctx context.Context) error
}
