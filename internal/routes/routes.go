package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/nanotip/nanotip/internal/account"
	"github.com/nanotip/nanotip/internal/bot"
	"github.com/nanotip/nanotip/internal/command"
	"github.com/nanotip/nanotip/internal/config"
	"github.com/nanotip/nanotip/internal/hangouts"
	"github.com/nanotip/nanotip/internal/middleware"
	"github.com/nanotip/nanotip/internal/node"
	"github.com/nanotip/nanotip/internal/price"
	"github.com/nanotip/nanotip/internal/teams"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg      config.Config
	Accounts account.Repository
	Cache    *redis.Client
	Logger   *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	nodeClient := node.NewHTTPClient(d.Cfg.NodeURL, d.Cfg.NodeTimeout)
	accountSvc := account.NewService(d.Accounts, nodeClient)
	parser := command.NewParser(d.Cfg.BotMention, d.Cfg.TipEmailDomain)
	executor := bot.NewExecutor(parser, accountSvc, nodeClient, d.Cfg.QRTemplate)

	tokens := teams.NewTokenCache(
		d.Cfg.TeamsTokenURL,
		d.Cfg.TeamsClientID,
		d.Cfg.TeamsClientSecret,
		d.Cfg.TeamsTokenScope,
		d.Cfg.NodeTimeout,
	)

	hangoutsHandler := hangouts.NewHandler(executor, d.Logger)
	teamsHandler := teams.NewHandler(executor, tokens, d.Cfg.NodeTimeout, d.Logger)
	priceSvc := price.NewService(d.Cfg.TickerURL, d.Cfg.PriceCacheTTL, d.Cfg.NodeTimeout, d.Cache, d.Logger)

	app.Post("/hangouts", hangoutsHandler.Webhook)
	app.Post("/teams", teamsHandler.Webhook)
	RegisterPriceRoute(app, priceSvc)

	return nil
}
