package account

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nanotip/nanotip/internal/infra"
)

func openTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := infra.NewSQLiteDB(filepath.Join(t.TempDir(), "accounts.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("prepare repository: %v", err)
	}
	return repo
}

func TestSQLiteAddGetRoundTrip(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	want := Account{
		Address:  "xrb_abc",
		Public:   "pub",
		Private:  "priv",
		Wallet:   "wallet_1",
		Identity: "alice@example.com",
	}
	if err := repo.Add(ctx, want); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := repo.Get(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v got %+v", want, got)
	}
}

func TestSQLiteGetMissing(t *testing.T) {
	repo := openTestRepository(t)
	if _, err := repo.Get(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteDuplicateIdentity(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	first := Account{Address: "xrb_1", Public: "p1", Private: "s1", Wallet: "w1", Identity: "bob@example.com"}
	if err := repo.Add(ctx, first); err != nil {
		t.Fatalf("add: %v", err)
	}

	second := Account{Address: "xrb_2", Public: "p2", Private: "s2", Wallet: "w2", Identity: "bob@example.com"}
	if err := repo.Add(ctx, second); !errors.Is(err, ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}

	// The winner's row is untouched.
	got, err := repo.Get(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != first {
		t.Fatalf("expected %+v got %+v", first, got)
	}
}
