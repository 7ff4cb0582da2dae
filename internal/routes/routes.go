package routes

import (
	"time"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/authz"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/config"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/handlers"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Invite     *handlers.InviteHandler
	UserAdmin  *handlers.UserAdminHandler
	Customer   *handlers.CustomerHandler
	Truck      *handlers.TruckHandler
	WorkOrder  *handlers.WorkOrderHandler
	Invoice    *handlers.InvoiceHandler
	PMTemplate *handlers.PMTemplateHandler
	Diagnostic *handlers.DiagnosticHandler
	Health     *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, h *Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Public auth + token endpoints: 10 req/min per IP (stricter)
	public := api.Group("/auth")
	public.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	public.Post("/login", h.Auth.Login)
	public.Post("/refresh", h.Auth.Refresh)
	public.Post("/email", h.Auth.RequestAuthEmail)
	public.Get("/invite", h.Invite.Validate)
	public.Post("/set-password", h.Invite.SetPassword)

	// Protected routes (JWT required)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), h.Auth.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), h.Auth.Me)

	protected := api.Group("", middleware.JWTProtected(cfg))

	customers := protected.Group("/customers")
	customers.Post("/", h.Customer.Create)
	customers.Get("/", h.Customer.List)
	customers.Get("/:id", h.Customer.Get)
	customers.Put("/:id", h.Customer.Update)
	customers.Delete("/:id", h.Customer.Delete)

	trucks := protected.Group("/trucks")
	trucks.Post("/", h.Truck.Create)
	trucks.Get("/", h.Truck.List)
	trucks.Get("/:id", h.Truck.Get)
	trucks.Put("/:id", h.Truck.Update)
	trucks.Delete("/:id", h.Truck.Delete)
	trucks.Get("/:id/notes", h.Truck.ListNotes)
	trucks.Post("/:id/notes", h.Truck.AddNote)
	trucks.Delete("/:id/notes/:noteId", h.Truck.DeleteNote)

	orders := protected.Group("/work-orders")
	orders.Post("/", h.WorkOrder.Create)
	orders.Get("/", h.WorkOrder.List)
	orders.Get("/:id", h.WorkOrder.Get)
	orders.Put("/:id", h.WorkOrder.Update)
	orders.Delete("/:id", h.WorkOrder.Delete)
	orders.Post("/:id/line-items", h.WorkOrder.AddLineItem)
	orders.Delete("/:id/line-items/:itemId", h.WorkOrder.DeleteLineItem)

	invoices := protected.Group("/invoices")
	invoices.Post("/", h.Invoice.Create)
	invoices.Get("/", h.Invoice.List)
	invoices.Get("/:id", h.Invoice.Get)
	invoices.Put("/:id/status", h.Invoice.SetStatus)
	invoices.Delete("/:id", h.Invoice.Delete)

	templates := protected.Group("/pm-templates")
	templates.Post("/", h.PMTemplate.Create)
	templates.Get("/", h.PMTemplate.List)
	templates.Get("/:id", h.PMTemplate.Get)
	templates.Put("/:id", h.PMTemplate.Update)
	templates.Delete("/:id", h.PMTemplate.Delete)

	protected.Post("/diagnostics/generate", h.Diagnostic.Generate)

	// User administration: office managers and up
	admin := api.Group("/admin",
		middleware.JWTProtected(cfg),
		middleware.RequireRole(authz.RoleOfficeManager),
	)
	admin.Get("/users", h.UserAdmin.List)
	admin.Post("/users", h.Invite.Create)
	admin.Get("/users/:id", h.UserAdmin.Get)
	admin.Put("/users/:id", h.UserAdmin.Update)
	admin.Post("/users/:id/resend-invite", h.Invite.Resend)
	admin.Post("/users/:id/toggle-status", h.UserAdmin.ToggleStatus)
	admin.Delete("/users/:id", h.UserAdmin.Delete)
}
