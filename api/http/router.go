package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/alumni-labs/bolsa/api/http/handlers"
	"github.com/alumni-labs/bolsa/api/http/presenter"
)

// Register wires the base middleware and all HTTP routes onto the given
// Fiber app.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	health *handlers.HealthHandler,
	jobs *handlers.JobHandler,
	companies *handlers.CompanyHandler,
	cvs *handlers.CVHandler,
	apps *handlers.ApplicationHandler,
	admin *handlers.AdminHandler,
	authMW fiber.Handler,
	optionalAuthMW fiber.Handler,
	adminMW fiber.Handler,
) {
	app.Use(recover.New())
	app.Use(logger.New())
	// The SPA runs on another origin; the admin token travels in a custom
	// header, so it has to clear the preflight.
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(string) bool { return true },
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization,X-Admin-Token",
	}))

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Live)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	// Public job board. The recommended listing personalizes when a session
	// is present and degrades to the plain listing when it is not.
	jg := v1.Group("/jobs")
	jg.Get("/", jobs.List)
	jg.Get("/recommended", optionalAuthMW, jobs.Recommended)
	jg.Get("/:id", jobs.Get)
	jg.Post("/:id/apply", authMW, apps.Apply)
	jg.Get("/:id/applied", authMW, apps.HasApplied)

	cg := v1.Group("/companies")
	cg.Get("/", companies.List)
	cg.Get("/mine", authMW, companies.Mine)
	cg.Get("/:id", companies.Get)
	cg.Get("/:id/jobs", jobs.ListByCompany)

	// CV builder, session-scoped
	cvg := v1.Group("/cv", authMW)
	cvg.Get("/", cvs.Load)
	cvg.Put("/", cvs.Save)
	cvg.Get("/skill-options/:category", cvs.SkillOptions)
	cvg.Put("/skill-options/:category", cvs.SaveSkillOptions)

	v1.Get("/applications/mine", authMW, apps.Mine)

	// Admin proxy. Every endpoint answers the {ok, error?} envelope; a wrong
	// HTTP method gets the same shape instead of Fiber's default 405 page.
	ag := v1.Group("/admin", adminMW)
	adminPost(ag, "/create-job", admin.CreateJob)
	adminPost(ag, "/update-job", admin.UpdateJob)
	adminPost(ag, "/update-profile", admin.UpdateProfile)
	adminPost(ag, "/authorize-user", admin.AuthorizeUser)
	adminPost(ag, "/delete-user", admin.DeleteUser)
	adminPost(ag, "/create-user", admin.CreateUser)
	adminPost(ag, "/reset-password", admin.ResetPassword)
	adminPost(ag, "/send-auth-link", admin.SendAuthLink)
	adminPost(ag, "/send-email", admin.SendEmail)
	adminPost(ag, "/create-company", admin.CreateCompany)
	adminPost(ag, "/moderate-company", admin.ModerateCompany)
	adminPost(ag, "/update-application", admin.UpdateApplication)
	adminPost(ag, "/log", admin.Log)
	ag.Get("/search-users", admin.SearchUsers)
	ag.All("/search-users", methodNotAllowed)
}

// adminPost registers a POST route plus a catch-all on the same path so a
// wrong method still answers the admin envelope.
func adminPost(g fiber.Router, path string, h fiber.Handler) {
	g.Post(path, h)
	g.All(path, methodNotAllowed)
}

func methodNotAllowed(c *fiber.Ctx) error {
	return presenter.AdminFail(c, http.StatusMethodNotAllowed, "Método no permitido")
}
