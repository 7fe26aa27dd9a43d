package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/youbuidl/feedcore/pkg/internal/http/api"
	"github.com/youbuidl/feedcore/pkg/internal/services"
)

var requestCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "feedcore_http_requests_total",
	Help: "HTTP requests served, by method, path and status.",
}, []string{"method", "path", "status"})

type App struct {
	app *fiber.App
}

func NewServer(deps *api.Deps) *App {
	app := fiber.New(fiber.Config{
		AppName:           "Feedcore",
		EnablePrintRoutes: false,
		ErrorHandler:      errorHandler,
	})

	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		requestCounter.WithLabelValues(
			c.Method(),
			c.Route().Path,
			strconv.Itoa(c.Response().StatusCode()),
		).Inc()
		log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Msg("Request handled.")
		return err
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api.MapAPIs(app, "/api", deps)

	return &App{app: app}
}

func errorHandler(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyReacted):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func (a *App) Listen() {
	if err := a.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting HTTP server.")
	}
}

// App exposes the underlying fiber app, mostly for tests.
func (a *App) App() *fiber.App {
	return a.app
}
