package account

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// PostgresRepository stores accounts in PostgreSQL. The accounts table
// carries a unique constraint on identity.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Add inserts an account record. A second write for the same identity
// returns ErrDuplicateIdentity.
func (r *PostgresRepository) Add(ctx context.Context, account Account) error {
	_, err := r.db.Exec(ctx, `INSERT INTO accounts (account, public, private, wallet, identity)
        VALUES ($1, $2, $3, $4, $5)`,
		account.Address, account.Public, account.Private, account.Wallet, account.Identity)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateIdentity
		}
		return err
	}
	return nil
}

// Get fetches the account stored for an identity.
func (r *PostgresRepository) Get(ctx context.Context, identity string) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT account, public, private, wallet, identity
        FROM accounts WHERE identity = $1`, identity)
	var account Account
	if err := row.Scan(&account.Address, &account.Public, &account.Private, &account.Wallet, &account.Identity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return account, nil
}

// Ping verifies pool connectivity.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
