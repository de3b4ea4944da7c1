package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Root(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	appName string
}

func NewHealthController(appName string) IHealthController {
	return &healthController{appName: appName}
}

// RegisterRoutes mounts the unversioned ops endpoints on the app root.
func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Root)
	r.Get("/health", c.Health)
	r.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (c *healthController) Root(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok", "app": c.appName})
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "healthy"})
}
