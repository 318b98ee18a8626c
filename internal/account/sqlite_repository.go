package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS accounts (
    id        INTEGER PRIMARY KEY,
    account   TEXT NOT NULL,
    public    TEXT NOT NULL,
    private   TEXT NOT NULL,
    wallet    TEXT NOT NULL,
    identity  TEXT UNIQUE NOT NULL
)`

// SQLiteRepository stores accounts in a local SQLite database. The handle is
// limited to a single connection, so reads and writes serialize on it.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository prepares the accounts table and returns a repository
// backed by the provided SQLite handle.
func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("create accounts table: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Add inserts an account record. A second write for the same identity
// returns ErrDuplicateIdentity.
func (r *SQLiteRepository) Add(ctx context.Context, account Account) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO accounts (account, public, private, wallet, identity)
        VALUES (?, ?, ?, ?, ?)`,
		account.Address, account.Public, account.Private, account.Wallet, account.Identity)
	if err != nil {
		var sqliteErr *msqlite.Error
		if errors.As(err, &sqliteErr) {
			switch sqliteErr.Code() {
			case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
				return ErrDuplicateIdentity
			}
		}
		return err
	}
	return nil
}

// Get fetches the account stored for an identity.
func (r *SQLiteRepository) Get(ctx context.Context, identity string) (Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT account, public, private, wallet, identity
        FROM accounts WHERE identity = ?`, identity)
	var account Account
	if err := row.Scan(&account.Address, &account.Public, &account.Private, &account.Wallet, &account.Identity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return account, nil
}

// Ping verifies the database handle is still usable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
