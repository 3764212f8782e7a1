// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"birdcams-tv/internal/transport/httpserver/handler"
	"birdcams-tv/internal/transport/httpserver/middleware"
	"birdcams-tv/internal/validator"
	"birdcams-tv/web"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port      int
	BodyLimit int
	Debug     bool
}

// Deps holds what the routes are served from.
type Deps struct {
	Aggregates handler.AggregateResolver
	Station    handler.Station
	Cache      handler.CacheAdmin
	Rebuilder  handler.Rebuilder
	Ready      middleware.ReadinessProbe
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg ServerConfig, deps Deps, v *validator.Validator, logger *zap.Logger) *Server {
	engine := html.NewFileSystem(http.FS(web.Templates()), ".html")
	if cfg.Debug {
		engine.Reload(true)
	}

	app := fiber.New(fiber.Config{
		AppName:               "birdcams-tv",
		BodyLimit:             cfg.BodyLimit,
		ErrorHandler:          errorHandler(logger),
		Views:                 engine,
		DisableStartupMessage: !cfg.Debug,
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes probes to work even during high load
	app.Use(middleware.NewHealthCheck(deps.Ready))

	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(middleware.CORS())
	app.Use(compress.New())

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(web.Static()),
		MaxAge: 3600,
	}))

	registerRoutes(app,
		handler.NewKioskHandler(deps.Aggregates, logger),
		handler.NewDataHandler(deps.Aggregates, logger),
		handler.NewStationHandler(deps.Station, v, logger),
		handler.NewAdminHandler(deps.Rebuilder, deps.Cache, logger),
	)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all routes.
func registerRoutes(
	app *fiber.App,
	kioskHandler *handler.KioskHandler,
	dataHandler *handler.DataHandler,
	stationHandler *handler.StationHandler,
	adminHandler *handler.AdminHandler,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	app.Get("/", kioskHandler.Render)

	v1 := app.Group("/api/v1")

	v1.Get("/data", dataHandler.Get)
	v1.Get("/station/queue", stationHandler.Queue)
	v1.Get("/playlists/:id", stationHandler.Playlist)

	admin := v1.Group("/admin")
	admin.Get("/cache", adminHandler.Status)
	admin.Delete("/cache", adminHandler.Clear)
	admin.Post("/cache/rebuild", adminHandler.Rebuild)

	// Everything else, /.well-known/ probes included, is a plain 404
	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

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
		default:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "UNHANDLED_ERROR",
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.ShutdownWithContext(ctx)
}
