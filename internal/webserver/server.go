package webserver

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

//go:embed web
var webFS embed.FS

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".css":  "text/css; charset=utf-8",
}

// NewApp builds the web UI app. The page reads apiURL from /config and
// talks to the API directly from the browser.
func NewApp(apiURL string, accessLog bool) (*fiber.App, error) {
	webContent, err := fs.Sub(webFS, "web")
	if err != nil {
		return nil, fmt.Errorf("failed to create web sub-filesystem: %w", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	})

	if accessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} WEB ${status} ${method} ${path} ${latency}\n",
		}))
	}
	app.Use(cors.New())

	// Served before the static handler
	app.Get("/config", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"apiUrl": apiURL,
		})
	})

	app.Get("*", func(c *fiber.Ctx) error {
		name := strings.TrimPrefix(c.Path(), "/")
		if name == "" {
			name = "index.html"
		}

		data, err := fs.ReadFile(webContent, name)
		if err != nil {
			// Unknown paths get the page itself
			name = "index.html"
			if data, err = fs.ReadFile(webContent, name); err != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("index.html not found")
			}
		}

		contentType, ok := contentTypes[path.Ext(name)]
		if !ok {
			contentType = "application/octet-stream"
		}
		c.Set(fiber.HeaderContentType, contentType)
		return c.Send(data)
	})

	return app, nil
}
