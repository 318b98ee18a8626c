package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/nanotip/nanotip/internal/price"
)

// RegisterPriceRoute exposes the current NANO price in euros.
func RegisterPriceRoute(app *fiber.App, svc *price.Service) {
	app.Get("/price", func(c *fiber.Ctx) error {
		value, err := svc.NanoPriceEUR(c.UserContext())
		if err != nil {
			return fiber.NewError(http.StatusBadGateway, "price lookup failed")
		}
		return c.JSON(fiber.Map{"nano_eur": value})
	})
}
