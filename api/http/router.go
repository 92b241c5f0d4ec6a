package http

import (
	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	"github.com/artem13815/resumebuilder/api/http/handlers"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	Tools      *handlers.ToolsHandler
	Drafts     *handlers.DraftsHandler
	Interviews *handlers.InterviewsHandler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for orchestrators and monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)
	a.Get("/me", authMW, h.Auth.Me)

	v1.Get("/options", handlers.Options)

	t := v1.Group("/tools", authMW)
	t.Post("/extract", h.Tools.Extract)
	t.Post("/autofill", h.Tools.Autofill)
	t.Post("/review-summary", h.Tools.ReviewSummary)
	t.Post("/generate/:kind", h.Tools.Generate)

	d := v1.Group("/drafts", authMW)
	d.Post("/", h.Drafts.Create)
	d.Post("/import", h.Drafts.Import)
	d.Get("/", h.Drafts.List)
	d.Get("/:id", h.Drafts.Get)
	d.Delete("/:id", h.Drafts.Delete)
	d.Put("/:id/template", h.Drafts.SetTemplate)
	d.Put("/:id/steps/:step", h.Drafts.SubmitStep)
	d.Get("/:id/preview", h.Drafts.Preview)
	d.Post("/:id/render", h.Drafts.Render)
	d.Get("/:id/document", h.Drafts.Document)

	i := v1.Group("/interviews", authMW)
	i.Post("/", h.Interviews.Start)
	i.Get("/", h.Interviews.List)
	i.Get("/:id", h.Interviews.Get)
	i.Post("/:id/answers", h.Interviews.Submit)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)
}
