// Package web serves a small read-only status API next to the bot.
package web

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prd11/dream11-bot/dreambot/database/models"
	"github.com/prd11/dream11-bot/dreambot/ledger"
	"github.com/prd11/dream11-bot/dreambot/schedule"
)

const (
	dateLayout        = "2006-01-02"
	requestsPerMinute = 60
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Standings interface {
	Leaderboard(ctx context.Context) ([]ledger.Standing, error)
	MatchLog(ctx context.Context) ([]*models.MatchResult, error)
}

type Deps struct {
	DB       Pinger
	Ledger   Standings
	Schedule *schedule.Schedule
	Version  string
	Commit   string
	Now      func() time.Time
}

type Server struct {
	app  *fiber.App
	deps Deps
}

func New(deps Deps) *Server {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := &Server{deps: deps}

	s.app = fiber.New(fiber.Config{
		AppName:               "Dream11 Bot API",
		ServerHeader:          "Dream11-Bot",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})

	s.app.Use(recover.New())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
	}))
	s.app.Use(loggingMiddleware())

	s.app.Get("/healthz", s.health)

	api := s.app.Group("/api")
	api.Use(limiter.New(limiter.Config{
		Max:        requestsPerMinute,
		Expiration: time.Minute,
	}))
	api.Get("/leaderboard", s.leaderboard)
	api.Get("/matches", s.matches)
	api.Get("/results", s.results)

	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving addr until Shutdown.
func (s *Server) Listen(addr string) error {
	slog.Info("Starting status API", slog.String("type", "sys"), slog.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func loggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		level := slog.LevelDebug
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		slog.Log(c.UserContext(), level, "HTTP request",
			slog.String("type", "web"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("took", time.Since(start)),
			slog.String("ip", c.IP()))
		return err
	}
}
