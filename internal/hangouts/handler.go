package hangouts

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nanotip/nanotip/internal/bot"
)

const (
	eventAddedToSpace = "ADDED_TO_SPACE"
	eventMessage      = "MESSAGE"
)

// Handler answers Hangouts Chat webhook events synchronously.
type Handler struct {
	executor *bot.Executor
	logger   *slog.Logger
}

// NewHandler builds a Hangouts webhook handler.
func NewHandler(executor *bot.Executor, logger *slog.Logger) *Handler {
	return &Handler{executor: executor, logger: logger}
}

// Webhook handles one inbound event and replies in the same HTTP exchange.
func (h *Handler) Webhook(c *fiber.Ctx) error {
	var event Event
	if err := c.BodyParser(&event); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	switch strings.TrimSpace(event.Type) {
	case eventAddedToSpace:
		return c.JSON(ResponseMessage{
			Text: fmt.Sprintf("Hello and thanks for adding me, *%s*. For help type `!help`", event.User.DisplayName),
		})
	case eventMessage:
		sender := bot.Sender{Identity: event.User.Email, DisplayName: event.User.DisplayName}
		reply := h.executor.HandleText(c.UserContext(), sender, event.Message.Text)
		h.logger.Info("handled message", "space", event.Space.Name, "sender", event.User.Email)
		return c.JSON(Render(reply))
	default:
		return c.JSON(ResponseMessage{Text: "Unsupported event"})
	}
}

// Render converts a platform-neutral reply into the Hangouts response
// format: plain text passes through, sections become one card.
func Render(reply bot.Reply) ResponseMessage {
	if len(reply.Sections) == 0 {
		return ResponseMessage{Text: reply.Text}
	}

	sections := make([]Section, 0, len(reply.Sections))
	for _, section := range reply.Sections {
		widgets := make([]Widget, 0, len(section.Rows))
		for _, row := range section.Rows {
			switch {
			case row.KeyValue != nil:
				widgets = append(widgets, Widget{KeyValue: &KeyValue{
					TopLabel: row.KeyValue.Label,
					Content:  row.KeyValue.Value,
				}})
			case row.Image != nil:
				widgets = append(widgets, Widget{Image: &Image{ImageURL: row.Image.URL}})
			}
		}
		sections = append(sections, Section{Header: section.Header, Widgets: widgets})
	}

	return ResponseMessage{Cards: []Card{{Sections: sections}}}
}
