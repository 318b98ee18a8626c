package teams

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// ErrTokenRefresh tags a failed client-credentials exchange. The caller is
// expected to skip its outbound post, not retry.
var ErrTokenRefresh = errors.New("bearer token refresh failed")

// TokenCache holds the single Bot Framework bearer credential for the
// process. The mutex spans the expiry check, the refresh and the
// replacement, so a caller arriving mid-refresh blocks until the new token
// is in place instead of issuing a duplicate exchange.
type TokenCache struct {
	mu        sync.Mutex
	value     string
	expiresAt time.Time

	tokenURL     string
	clientID     string
	clientSecret string
	scope        string
	client       *http.Client
	now          func() time.Time
}

// NewTokenCache builds an empty cache; the first Token call performs the
// initial exchange.
func NewTokenCache(tokenURL, clientID, clientSecret, scope string, timeout time.Duration) *TokenCache {
	return &TokenCache{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		scope:        scope,
		client:       &http.Client{Timeout: timeout},
		now:          time.Now,
	}
}

// Token returns a bearer token that is valid now, refreshing it via the
// OAuth2 client-credentials grant exactly when the cached one has expired.
// A refresh failure leaves the previous token in place and reports
// ErrTokenRefresh.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.value != "" && c.now().Before(c.expiresAt) {
		return c.value, nil
	}

	token, expiresIn, err := c.refresh(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenRefresh, err)
	}

	c.value = token
	c.expiresAt = c.now().Add(time.Duration(expiresIn) * time.Second)
	return c.value, nil
}

func (c *TokenCache) refresh(ctx context.Context) (string, int64, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"scope":         {c.scope},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var decoded struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", 0, fmt.Errorf("decode token response: %w", err)
	}
	if decoded.AccessToken == "" {
		return "", 0, fmt.Errorf("token endpoint returned no access_token")
	}
	return decoded.AccessToken, decoded.ExpiresIn, nil
}
