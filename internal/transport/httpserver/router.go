// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eguilbert/cineapi/internal/app/service"
	"github.com/eguilbert/cineapi/internal/domain"
	"github.com/eguilbert/cineapi/internal/transport/httpserver/handler"
	"github.com/eguilbert/cineapi/internal/transport/httpserver/middleware"
	"github.com/eguilbert/cineapi/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port      int
	BodyLimit int
	Debug     bool
}

// Services bundles the application services the routes dispatch to.
type Services struct {
	Films       *service.FilmService
	Interests   *service.InterestService
	Ratings     *service.RatingService
	Selections  *service.SelectionService
	Programming *service.ProgrammingService
	Cinemas     *service.CinemaService
	Lists       *service.ListService
	Stats       *service.StatsService
	Refresh     *service.RefreshService
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg ServerConfig,
	svcs Services,
	db *gorm.DB,
	sessions domain.SessionStore,
	catalog domain.Catalog,
	cache handler.CacheClearer,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	// Template engine for dashboard
	engine := html.New("./web/templates", ".html")
	if cfg.Debug {
		engine.Reload(true)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "cineapi",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
		Views:        engine,
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes probes to work even during high load
	app.Use(middleware.NewHealthCheck(db))

	// Global middleware
	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Auth(sessions, logger))
	app.Use(middleware.Logger(logger))
	app.Use(middleware.CORS())
	app.Use(compress.New())

	// Static files
	app.Static("/static", "./web/static")

	// Create handlers
	filmHandler := handler.NewFilmHandler(svcs.Films, v, logger)
	interestHandler := handler.NewInterestHandler(svcs.Interests, svcs.Ratings, v, logger)
	selectionHandler := handler.NewSelectionHandler(svcs.Selections, v, logger)
	programmingHandler := handler.NewProgrammingHandler(svcs.Programming, v, logger)
	cinemaHandler := handler.NewCinemaHandler(svcs.Cinemas, v, logger)
	listHandler := handler.NewListHandler(svcs.Lists, v, logger)
	dashboardHandler := handler.NewDashboardHandler(svcs.Stats, logger)
	adminHandler := handler.NewAdminHandler(svcs.Refresh, catalog, cache, logger)

	registerRoutes(app, filmHandler, interestHandler, selectionHandler,
		programmingHandler, cinemaHandler, listHandler, dashboardHandler, adminHandler)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all API routes.
func registerRoutes(
	app *fiber.App,
	filmHandler *handler.FilmHandler,
	interestHandler *handler.InterestHandler,
	selectionHandler *handler.SelectionHandler,
	programmingHandler *handler.ProgrammingHandler,
	cinemaHandler *handler.CinemaHandler,
	listHandler *handler.ListHandler,
	dashboardHandler *handler.DashboardHandler,
	adminHandler *handler.AdminHandler,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	// Dashboard (HTML)
	app.Get("/dashboard", dashboardHandler.Render)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	// API v1 routes
	v1 := app.Group("/api/v1")

	// Films
	films := v1.Group("/films")
	films.Get("/", filmHandler.List)
	films.Post("/", middleware.RequireAdmin(), filmHandler.Create)
	films.Post("/import", middleware.RequireAdmin(), filmHandler.Import)
	films.Get("/:id", filmHandler.Get)
	films.Put("/:id", middleware.RequireAdmin(), filmHandler.Update)
	films.Get("/:id/interests", interestHandler.Stats)
	films.Post("/:id/interests", middleware.RequireAuth(), interestHandler.Cast)
	films.Post("/:id/ratings", middleware.RequireAuth(), interestHandler.Rate)

	// Current member
	v1.Get("/me/interests", middleware.RequireAuth(), interestHandler.Mine)

	// Selections
	selections := v1.Group("/selections")
	selections.Get("/", selectionHandler.List)
	selections.Post("/", middleware.RequireAdmin(), selectionHandler.Create)
	selections.Get("/:id", selectionHandler.Get)
	selections.Delete("/:id", middleware.RequireAdmin(), selectionHandler.Delete)
	selections.Post("/:id/films", middleware.RequireAdmin(), selectionHandler.AddFilm)
	selections.Delete("/:id/films/:filmID", middleware.RequireAdmin(), selectionHandler.RemoveFilm)
	selections.Post("/:id/open-vote", middleware.RequireAdmin(), selectionHandler.OpenVote)
	selections.Post("/:id/approve", middleware.RequireAdmin(), selectionHandler.Approve)

	// Programming
	selections.Get("/:id/programming", programmingHandler.List)
	selections.Put("/:id/programming", middleware.RequireAdmin(), programmingHandler.Upsert)
	selections.Get("/:id/films/:filmID/comments", programmingHandler.ListComments)
	selections.Post("/:id/films/:filmID/comments", middleware.RequireAuth(), programmingHandler.AddComment)

	// Cinemas
	cinemas := v1.Group("/cinemas")
	cinemas.Get("/", cinemaHandler.List)
	cinemas.Post("/", middleware.RequireAdmin(), cinemaHandler.Create)

	// Lists
	lists := v1.Group("/lists")
	lists.Get("/", listHandler.List)
	lists.Get("/:slug", listHandler.Resolve)

	// Stats
	v1.Get("/stats", dashboardHandler.Overview)

	// Admin routes
	admin := v1.Group("/admin", middleware.RequireAdmin())
	admin.Post("/refresh", adminHandler.Refresh)
	admin.Post("/cache/clear", adminHandler.ClearCache)
	admin.Get("/tmdb/health", adminHandler.CatalogHealth)
}

// errorHandler returns a custom error handler that maps the domain error
// taxonomy to HTTP statuses and logs based on the resulting code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "UNHANDLED_ERROR"

		switch {
		case domain.IsNotFound(err):
			code = fiber.StatusNotFound
			errCode = "NOT_FOUND"
		case domain.IsValidation(err):
			code = fiber.StatusBadRequest
			errCode = "VALIDATION_ERROR"
		default:
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
		}

		// Log based on status code - 404s are common and not server errors
		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		case code >= 400:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Error("unhandled error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  errCode,
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
