package node

import "context"

// Key is freshly generated key material for a ledger account.
type Key struct {
	Account string `json:"account"`
	Public  string `json:"public"`
	Private string `json:"private"`
}

// Wallet identifies a wallet held by the node.
type Wallet struct {
	ID string `json:"wallet"`
}

// Balance reports confirmed and pending funds for an account, in raw units.
// The node speaks decimal strings to preserve arbitrary precision; they are
// never parsed into a float.
type Balance struct {
	Balance string `json:"balance"`
	Pending string `json:"pending"`
}

// Client defines the contract implemented by wallet node backends.
type Client interface {
	CreateKey(ctx context.Context) (Key, error)
	CreateWallet(ctx context.Context) (Wallet, error)
	AddKeyToWallet(ctx context.Context, wallet, key string) error
	Balance(ctx context.Context, account string) (Balance, error)
	Send(ctx context.Context, wallet, source, destination, amount string) error
}
