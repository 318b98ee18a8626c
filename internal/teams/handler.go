package teams

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nanotip/nanotip/internal/bot"
)

// Handler executes commands from Bot Framework activities and posts the
// reply back to the originating conversation.
type Handler struct {
	executor *bot.Executor
	tokens   *TokenCache
	client   *http.Client
	logger   *slog.Logger
}

// NewHandler builds a Teams webhook handler.
func NewHandler(executor *bot.Executor, tokens *TokenCache, timeout time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		executor: executor,
		tokens:   tokens,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Webhook handles one inbound activity. The reply travels out of band via
// the Bot Framework connector, so the webhook itself always answers 200;
// a failed outbound post is logged and dropped, never retried.
func (h *Handler) Webhook(c *fiber.Ctx) error {
	var activity Activity
	if err := c.BodyParser(&activity); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if strings.TrimSpace(activity.Type) != "message" {
		return c.SendStatus(http.StatusOK)
	}

	sender := bot.Sender{Identity: activity.From.ID, DisplayName: activity.From.Name}
	reply := h.executor.HandleText(c.UserContext(), sender, activity.Text)

	if err := h.post(c.UserContext(), activity, reply); err != nil {
		h.logger.Error("post teams reply", "conversation", activity.Conversation.ID, "error", err)
	}

	return c.SendStatus(http.StatusOK)
}

func (h *Handler) post(ctx context.Context, activity Activity, reply bot.Reply) error {
	token, err := h.tokens.Token(ctx)
	if err != nil {
		// No valid credential; skip the post for this reply.
		return err
	}

	payload, err := json.Marshal(response{
		Type:         "message",
		From:         activity.Recipient,
		Conversation: activity.Conversation,
		Recipient:    activity.From,
		Text:         RenderText(reply),
		ReplyToID:    activity.ID,
	})
	if err != nil {
		return fmt.Errorf("encode reply: %w", err)
	}

	uri := fmt.Sprintf("%s/v3/conversations/%s/activities/%s",
		strings.TrimSuffix(activity.ServiceURL, "/"), activity.Conversation.ID, activity.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build reply request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("post reply: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("connector returned status %d", resp.StatusCode)
	}
	return nil
}

// RenderText flattens a reply into the plain text Teams messages use:
// section headers followed by their rows, one per line.
func RenderText(reply bot.Reply) string {
	if len(reply.Sections) == 0 {
		return reply.Text
	}

	var b strings.Builder
	for i, section := range reply.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		if section.Header != "" {
			b.WriteString("**" + section.Header + "**\n")
		}
		for _, row := range section.Rows {
			switch {
			case row.KeyValue != nil:
				b.WriteString(row.KeyValue.Label + ": " + row.KeyValue.Value + "\n")
			case row.Image != nil:
				b.WriteString(row.Image.URL + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
