package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/supportflow/opsdash/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Auth            *handlers.AuthHandler
	Users           *handlers.UsersHandler
	Platforms       *handlers.PlatformsHandler
	Integrations    *handlers.IntegrationsHandler
	Tickets         *handlers.TicketsHandler
	AutomationRules *handlers.AutomationRulesHandler
	ManagedAccounts *handlers.ManagedAccountsHandler
	Metrics         *handlers.MetricsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Post("/login", cfg.Auth.Login)

	api.Get("/users", cfg.Users.List)
	api.Post("/users", cfg.Users.Create)

	api.Get("/platforms", cfg.Platforms.List)
	api.Post("/platforms", cfg.Platforms.Create)

	api.Get("/integrations", cfg.Integrations.List)
	api.Get("/integrations/platform/:platformId", cfg.Integrations.ListByPlatform)
	api.Post("/integrations", cfg.Integrations.Create)
	api.Post("/integrations/:id/test", cfg.Integrations.TestConnection)

	api.Get("/tickets", cfg.Tickets.List)
	api.Get("/tickets/status/:status", cfg.Tickets.ListByStatus)
	api.Get("/tickets/platform/:platformId", cfg.Tickets.ListByPlatform)
	api.Post("/tickets", cfg.Tickets.Create)
	api.Patch("/tickets/:id", cfg.Tickets.Update)

	api.Get("/automation-rules", cfg.AutomationRules.List)
	api.Post("/automation-rules", cfg.AutomationRules.Create)

	api.Get("/managed-accounts", cfg.ManagedAccounts.List)
	api.Post("/managed-accounts", cfg.ManagedAccounts.Create)
	api.Patch("/managed-accounts/:id", cfg.ManagedAccounts.Update)

	api.Get("/metrics", cfg.Metrics.Get)
}
