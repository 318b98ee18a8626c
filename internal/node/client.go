package node

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type basicCommand struct {
	Action string `json:"action"`
}

type accountCommand struct {
	Action  string `json:"action"`
	Account string `json:"account"`
}

type walletCommand struct {
	Action string `json:"action"`
	Wallet string `json:"wallet"`
	Key    string `json:"key"`
}

type sendCommand struct {
	Action      string `json:"action"`
	Wallet      string `json:"wallet"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Amount      string `json:"amount"`
}

// HTTPClient talks to a wallet node over its JSON action protocol.
type HTTPClient struct {
	url    string
	client *http.Client
}

// NewHTTPClient builds a node client for the given endpoint. Every call is
// bounded by the provided timeout so a hung node cannot stall a request
// handler indefinitely.
func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// CreateKey asks the node to generate a fresh account key pair.
func (c *HTTPClient) CreateKey(ctx context.Context) (Key, error) {
	var key Key
	if err := c.call(ctx, basicCommand{Action: "key_create"}, &key); err != nil {
		return Key{}, err
	}
	return key, nil
}

// CreateWallet asks the node to create a new wallet.
func (c *HTTPClient) CreateWallet(ctx context.Context) (Wallet, error) {
	var wallet Wallet
	if err := c.call(ctx, basicCommand{Action: "wallet_create"}, &wallet); err != nil {
		return Wallet{}, err
	}
	return wallet, nil
}

// AddKeyToWallet attaches a private key to an existing wallet.
func (c *HTTPClient) AddKeyToWallet(ctx context.Context, wallet, key string) error {
	return c.call(ctx, walletCommand{Action: "wallet_add", Wallet: wallet, Key: key}, nil)
}

// Balance reads the confirmed and pending balance for an account.
func (c *HTTPClient) Balance(ctx context.Context, account string) (Balance, error) {
	var balance Balance
	if err := c.call(ctx, accountCommand{Action: "account_balance", Account: account}, &balance); err != nil {
		return Balance{}, err
	}
	return balance, nil
}

// Send submits a transfer from a wallet account to a destination account.
// The amount is the caller's original decimal-digit string.
func (c *HTTPClient) Send(ctx context.Context, wallet, source, destination, amount string) error {
	cmd := sendCommand{
		Action:      "send",
		Wallet:      wallet,
		Source:      source,
		Destination: destination,
		Amount:      amount,
	}
	return c.call(ctx, cmd, nil)
}

func (c *HTTPClient) call(ctx context.Context, command any, out any) error {
	payload, err := json.Marshal(command)
	if err != nil {
		return fmt.Errorf("encode node command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build node request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call node: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read node response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("node returned status %d", resp.StatusCode)
	}

	// The node reports failures inside a 200 response.
	var rpcErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &rpcErr); err == nil && rpcErr.Error != "" {
		return fmt.Errorf("node error: %s", rpcErr.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode node response: %w", err)
	}
	return nil
}
