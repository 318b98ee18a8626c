package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/nanotip/nanotip/internal/node"
)

var (
	// ErrWalletCreate tags a failed wallet_create call during provisioning.
	ErrWalletCreate = errors.New("wallet create failed")
	// ErrKeyCreate tags a failed key_create call during provisioning.
	ErrKeyCreate = errors.New("key create failed")
	// ErrAttachKey tags a failed wallet_add call during provisioning.
	ErrAttachKey = errors.New("attach key to wallet failed")
	// ErrStoreWrite tags a failed persist or re-read of the new account.
	ErrStoreWrite = errors.New("account store write failed")
)

// Service resolves chat identities to ledger accounts, provisioning one
// transparently on first use.
type Service struct {
	repo Repository
	node node.Client
}

// NewService builds an account service instance.
func NewService(repo Repository, nodeClient node.Client) *Service {
	return &Service{repo: repo, node: nodeClient}
}

// Resolve returns the account for an identity. When none exists yet it
// creates a wallet and key on the node, attaches them, persists the binding
// and returns the stored record. Nothing is persisted if any node step
// fails, and no step is retried.
func (s *Service) Resolve(ctx context.Context, identity string) (Account, error) {
	if identity == "" {
		return Account{}, fmt.Errorf("identity is required")
	}

	account, err := s.repo.Get(ctx, identity)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Account{}, err
	}

	wallet, err := s.node.CreateWallet(ctx)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrWalletCreate, err)
	}
	key, err := s.node.CreateKey(ctx)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrKeyCreate, err)
	}
	if err := s.node.AddKeyToWallet(ctx, wallet.ID, key.Private); err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrAttachKey, err)
	}

	record := Account{
		Address:  key.Account,
		Public:   key.Public,
		Private:  key.Private,
		Wallet:   wallet.ID,
		Identity: identity,
	}
	if err := s.repo.Add(ctx, record); err != nil && !errors.Is(err, ErrDuplicateIdentity) {
		return Account{}, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	// Re-read so the caller always sees the canonical stored row. A
	// duplicate-key rejection above means a concurrent request won the
	// first-use race; its row is the account for this identity.
	account, err = s.repo.Get(ctx, identity)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	return account, nil
}
