package api

import (
	v1 "github.com/captainblair/vertex/internal/api/v1"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Get("/ping", handler.Pong)

	app.Post("/api/stkpush", handler.StkPush)
	app.Post("/api/callback", handler.Callback)
	app.Get("/api/status/:checkoutRequestId", handler.Status)

	app.Post("/api/orders", handler.CreateOrder)
	app.Get("/api/orders/:id", handler.GetOrder)
}
