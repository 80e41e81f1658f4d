package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"chessgrid/internal/core"
	"chessgrid/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Config tunes the API app
type Config struct {
	// RateLimit is requests per second per client IP on /api/v1, 0 disables limiting
	RateLimit int
	// AccessLog enables the request log line
	AccessLog bool
}

// DefaultConfig returns production settings, or relaxed ones for development
func DefaultConfig(devMode bool) Config {
	if devMode {
		return Config{RateLimit: 20, AccessLog: true}
	}
	return Config{RateLimit: 5, AccessLog: true}
}

type HTTPHandler struct {
	svc *service.Service
}

func NewHTTPHandler(svc *service.Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

func NewFiberApp(svc *service.Service, cfg Config) *fiber.App {
	h := NewHTTPHandler(svc)

	// Write timeout leaves room for a full long-poll wait
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: service.WaitTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")
	if cfg.RateLimit > 0 {
		api.Use(rateLimiter(cfg.RateLimit))
	}
	api.Use(contentTypeValidator)
	api.Use(validationMiddleware)

	api.Post("/games", h.CreateGame)
	api.Get("/games", h.ListGames)
	api.Get("/games/:gameId", h.GetGame)
	api.Delete("/games/:gameId", h.DeleteGame)
	api.Post("/games/:gameId/moves", h.MakeMove)
	api.Post("/games/:gameId/reset", h.ResetGame)
	api.Get("/games/:gameId/board", h.GetBoard)
	api.Get("/games/:gameId/status", h.GetStatus)
	api.Get("/games/:gameId/squares/:square/moves", h.GetPossibleMoves)

	return app
}

func rateLimiter(maxReq int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        maxReq,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			// First hop of X-Forwarded-For, else the peer address
			if xff := c.Get("X-Forwarded-For"); xff != "" {
				if idx := strings.Index(xff, ","); idx != -1 {
					return strings.TrimSpace(xff[:idx])
				}
				return xff
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	})
}

// contentTypeValidator ensures POST requests carry JSON
func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		contentType := c.Get("Content-Type")
		if contentType != "" && !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		response.Error = fe.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrGameNotFound
		case fiber.StatusBadRequest:
			response.Code = core.ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// Health reports liveness and the storage state
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(core.HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Unix(),
		Storage: h.svc.GetStorageHealth(),
	})
}
