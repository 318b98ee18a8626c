package node

import (
	"context"
	"fmt"
	"sync"
)

// SendRequest records the arguments of one Send call on the fake client.
type SendRequest struct {
	Wallet      string
	Source      string
	Destination string
	Amount      string
}

// FakeClient is a scripted, concurrency-safe node client for unit tests.
// Zero value behaviour: key and wallet creation return generated values,
// balances return the seeded entry or an error, Send succeeds and records
// its arguments. Setting one of the Err fields makes the matching call fail.
type FakeClient struct {
	mu sync.Mutex

	KeyCreateCalls    int
	WalletCreateCalls int
	WalletAddCalls    int
	BalanceCalls      int
	SendCalls         int

	Balances map[string]Balance
	Sends    []SendRequest

	KeyErr     error
	WalletErr  error
	AddErr     error
	BalanceErr error
	SendErr    error
}

// NewFakeClient builds a fake node client for tests.
func NewFakeClient() *FakeClient {
	return &FakeClient{Balances: make(map[string]Balance)}
}

func (f *FakeClient) CreateKey(_ context.Context) (Key, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.KeyCreateCalls++
	if f.KeyErr != nil {
		return Key{}, f.KeyErr
	}
	n := f.KeyCreateCalls
	return Key{
		Account: fmt.Sprintf("xrb_account_%d", n),
		Public:  fmt.Sprintf("public_%d", n),
		Private: fmt.Sprintf("private_%d", n),
	}, nil
}

func (f *FakeClient) CreateWallet(_ context.Context) (Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.WalletCreateCalls++
	if f.WalletErr != nil {
		return Wallet{}, f.WalletErr
	}
	return Wallet{ID: fmt.Sprintf("wallet_%d", f.WalletCreateCalls)}, nil
}

func (f *FakeClient) AddKeyToWallet(_ context.Context, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.WalletAddCalls++
	return f.AddErr
}

func (f *FakeClient) Balance(_ context.Context, account string) (Balance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BalanceCalls++
	if f.BalanceErr != nil {
		return Balance{}, f.BalanceErr
	}
	balance, ok := f.Balances[account]
	if !ok {
		return Balance{}, fmt.Errorf("account %s unknown", account)
	}
	return balance, nil
}

func (f *FakeClient) Send(_ context.Context, wallet, source, destination, amount string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SendCalls++
	if f.SendErr != nil {
		return f.SendErr
	}
	f.Sends = append(f.Sends, SendRequest{Wallet: wallet, Source: source, Destination: destination, Amount: amount})
	return nil
}

// NodeCalls reports the total number of provisioning-related calls, useful
// for asserting that a second resolve of the same identity does no node I/O.
func (f *FakeClient) NodeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.KeyCreateCalls + f.WalletCreateCalls + f.WalletAddCalls
}
