package teams

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTokenRefreshedOncePerExpiryWindow(t *testing.T) {
	refreshes := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshes++
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.Form.Get("grant_type") != "client_credentials" {
			t.Fatalf("unexpected grant_type %q", r.Form.Get("grant_type"))
		}
		if r.Form.Get("client_id") != "bot-id" || r.Form.Get("client_secret") != "bot-secret" {
			t.Fatalf("unexpected credentials %v", r.Form)
		}
		w.Write([]byte(`{"access_token":"tok-1","expires_in":3600}`))
	}))
	defer srv.Close()

	cache := NewTokenCache(srv.URL, "bot-id", "bot-secret", "scope", time.Second)

	first, err := cache.Token(context.Background())
	if err != nil {
		t.Fatalf("first token: %v", err)
	}
	second, err := cache.Token(context.Background())
	if err != nil {
		t.Fatalf("second token: %v", err)
	}

	if first != "tok-1" || second != "tok-1" {
		t.Fatalf("expected cached token, got %q then %q", first, second)
	}
	if refreshes != 1 {
		t.Fatalf("expected exactly one refresh, got %d", refreshes)
	}
}

func TestTokenRefreshesAfterExpiry(t *testing.T) {
	refreshes := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		refreshes++
		w.Write([]byte(`{"access_token":"tok-fresh","expires_in":3600}`))
	}))
	defer srv.Close()

	cache := NewTokenCache(srv.URL, "id", "secret", "scope", time.Second)
	clock := time.Now()
	cache.now = func() time.Time { return clock }

	if _, err := cache.Token(context.Background()); err != nil {
		t.Fatalf("initial token: %v", err)
	}

	clock = clock.Add(2 * time.Hour)
	token, err := cache.Token(context.Background())
	if err != nil {
		t.Fatalf("post-expiry token: %v", err)
	}
	if token != "tok-fresh" || refreshes != 2 {
		t.Fatalf("expected a second refresh, got token %q after %d refreshes", token, refreshes)
	}
}

func TestTokenRefreshFailureIsTagged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	cache := NewTokenCache(srv.URL, "id", "wrong", "scope", time.Second)
	if _, err := cache.Token(context.Background()); !errors.Is(err, ErrTokenRefresh) {
		t.Fatalf("expected ErrTokenRefresh, got %v", err)
	}
}

func TestTokenRefreshFailureKeepsPreviousValue(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if !healthy {
			http.Error(w, "upstream down", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"access_token":"tok-old","expires_in":3600}`))
	}))
	defer srv.Close()

	cache := NewTokenCache(srv.URL, "id", "secret", "scope", time.Second)
	clock := time.Now()
	cache.now = func() time.Time { return clock }

	if _, err := cache.Token(context.Background()); err != nil {
		t.Fatalf("initial token: %v", err)
	}

	healthy = false
	clock = clock.Add(2 * time.Hour)
	if _, err := cache.Token(context.Background()); !errors.Is(err, ErrTokenRefresh) {
		t.Fatalf("expected ErrTokenRefresh, got %v", err)
	}

	// The stale value is still held; a later successful refresh replaces it.
	healthy = true
	token, err := cache.Token(context.Background())
	if err != nil {
		t.Fatalf("recovery token: %v", err)
	}
	if token != "tok-old" {
		t.Fatalf("expected refreshed token, got %q", token)
	}
	if cache.value != "tok-old" {
		t.Fatalf("cache holds %q", cache.value)
	}
}

func TestConcurrentCallersShareOneRefresh(t *testing.T) {
	refreshes := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		refreshes++
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte(`{"access_token":"tok-1","expires_in":3600}`))
	}))
	defer srv.Close()

	cache := NewTokenCache(srv.URL, "id", "secret", "scope", time.Second)

	results := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() {
			_, err := cache.Token(context.Background())
			results <- err
		}()
	}
	for i := 0; i < 4; i++ {
		if err := <-results; err != nil {
			t.Fatalf("concurrent token: %v", err)
		}
	}
	if refreshes != 1 {
		t.Fatalf("expected one refresh across concurrent callers, got %d", refreshes)
	}
}
