package teams

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nanotip/nanotip/internal/account"
	"github.com/nanotip/nanotip/internal/bot"
	"github.com/nanotip/nanotip/internal/command"
	"github.com/nanotip/nanotip/internal/logging"
	"github.com/nanotip/nanotip/internal/node"
)

func newTestHandler(t *testing.T, tokens *TokenCache) *Handler {
	t.Helper()
	parser := command.NewParser("", "")
	accounts := account.NewService(account.NewMemoryRepository(), node.NewFakeClient())
	executor := bot.NewExecutor(parser, accounts, node.NewFakeClient(), "https://qr.example/?data=%s")
	return NewHandler(executor, tokens, time.Second, logging.Discard())
}

func runWebhook(t *testing.T, handler *Handler, payload string) int {
	t.Helper()
	app := fiber.New()
	app.Post("/teams", handler.Webhook)

	req := httptest.NewRequest(fiber.MethodPost, "/teams", strings.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestWebhookPostsReplyWithBearer(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"access_token":"tok-1","expires_in":3600}`))
	}))
	defer tokenSrv.Close()

	var posted response
	var authHeader, postedPath string
	connector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		postedPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
			t.Fatalf("decode posted reply: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer connector.Close()

	handler := newTestHandler(t, NewTokenCache(tokenSrv.URL, "id", "secret", "scope", time.Second))

	payload := fmt.Sprintf(`{
        "type":"message",
        "id":"act-1",
        "serviceUrl":%q,
        "from":{"id":"user-1","name":"Sam"},
        "conversation":{"id":"conv-1"},
        "recipient":{"id":"bot-1","name":"Tip Bot"},
        "text":"!help"
    }`, connector.URL)

	if status := runWebhook(t, handler, payload); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	if authHeader != "Bearer tok-1" {
		t.Fatalf("expected bearer auth, got %q", authHeader)
	}
	if postedPath != "/v3/conversations/conv-1/activities/act-1" {
		t.Fatalf("unexpected connector path %q", postedPath)
	}
	if posted.Type != "message" || posted.ReplyToID != "act-1" {
		t.Fatalf("unexpected reply envelope %+v", posted)
	}
	if posted.From.ID != "bot-1" || posted.Recipient.ID != "user-1" {
		t.Fatalf("reply parties not swapped: %+v", posted)
	}
	if !strings.Contains(posted.Text, "!balance") {
		t.Fatalf("expected help text, got %q", posted.Text)
	}
}

func TestWebhookSkipsPostWhenTokenRefreshFails(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer tokenSrv.Close()

	connectorHits := 0
	connector := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		connectorHits++
	}))
	defer connector.Close()

	handler := newTestHandler(t, NewTokenCache(tokenSrv.URL, "id", "bad", "scope", time.Second))

	payload := fmt.Sprintf(`{"type":"message","id":"act-1","serviceUrl":%q,
        "from":{"id":"u"},"conversation":{"id":"c"},"recipient":{"id":"b"},"text":"!help"}`, connector.URL)

	if status := runWebhook(t, handler, payload); status != fiber.StatusOK {
		t.Fatalf("token failure must not fail the webhook, got %d", status)
	}
	if connectorHits != 0 {
		t.Fatalf("expected no connector post, got %d", connectorHits)
	}
}

func TestWebhookIgnoresNonMessageActivity(t *testing.T) {
	handler := newTestHandler(t, NewTokenCache("http://127.0.0.1:0", "id", "secret", "scope", time.Second))

	if status := runWebhook(t, handler, `{"type":"conversationUpdate","id":"act-2"}`); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
}

func TestRenderTextFlattensSections(t *testing.T) {
	reply := bot.Reply{Sections: []bot.Section{{
		Header: "Tip sent!",
		Rows: []bot.Row{
			bot.KV("From", "a@x.com"),
			bot.KV("Amount", "10"),
		},
	}}}

	text := RenderText(reply)
	if !strings.Contains(text, "Tip sent!") || !strings.Contains(text, "From: a@x.com") || !strings.Contains(text, "Amount: 10") {
		t.Fatalf("unexpected flattened text %q", text)
	}
}
