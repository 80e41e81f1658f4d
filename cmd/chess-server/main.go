// Package main implements the chess API server with optional persistence
// and web UI serving.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chessgrid/cmd/chess-server/cli"
	"chessgrid/internal/service"
	"chessgrid/internal/storage"
	"chessgrid/internal/transport/http"
	"chessgrid/internal/webserver"

	"github.com/gofiber/fiber/v2"
	"github.com/hashicorp/go-multierror"
)

const (
	gracefulShutdownTimeout = time.Second * 5
)

func main() {
	// Database admin commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:], os.Stdout); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		os.Exit(0)
	}

	var (
		apiHost     = flag.String("api-host", "localhost", "API server host")
		apiPort     = flag.Int("api-port", 8080, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, WAL journal)")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file (disables persistence if empty)")
		pidPath     = flag.String("pid", "", "Optional path to write PID file")
		pidLock     = flag.Bool("pid-lock", false, "Lock PID file to allow only one instance (requires -pid)")

		serve   = flag.Bool("serve", false, "Enable web UI server")
		webHost = flag.String("web-host", "localhost", "Web UI server host")
		webPort = flag.Int("web-port", 9090, "Web UI server port")
	)
	flag.Parse()

	if *pidLock && *pidPath == "" {
		log.Fatal("Error: -pid-lock flag requires the -pid flag to be set")
	}

	if *pidPath != "" {
		cleanup, err := managePIDFile(*pidPath, *pidLock)
		if err != nil {
			log.Fatalf("Failed to manage PID file: %v", err)
		}
		defer cleanup()
		log.Printf("PID file created at: %s (lock: %v)", *pidPath, *pidLock)
	}

	// 1. Storage (optional), closed by the service
	var store *storage.Store
	if *storagePath != "" {
		log.Printf("Initializing persistent storage at: %s", *storagePath)
		var err error
		store, err = storage.Open(*storagePath, *dev)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			store.Close()
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	} else {
		log.Printf("Persistent storage disabled (use -storage-path to enable)")
	}

	// 2. Service
	svc, err := service.New(store)
	if err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}

	// 3. API app
	cfg := http.DefaultConfig(*dev)
	app := http.NewFiberApp(svc, cfg)
	apiAddr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	go func() {
		log.Printf("Chess API Server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		log.Printf("Rate Limit: %d requests/second per IP", cfg.RateLimit)
		if *storagePath != "" {
			log.Printf("Storage: Enabled (%s)", *storagePath)
		} else {
			log.Printf("Storage: Disabled")
		}
		log.Printf("API Endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	// 4. Web UI (optional)
	var web *fiber.App
	if *serve {
		webAddr := fmt.Sprintf("%s:%d", *webHost, *webPort)
		apiURL := fmt.Sprintf("http://%s", apiAddr)

		web, err = webserver.NewApp(apiURL, true)
		if err != nil {
			log.Fatalf("Failed to initialize web UI: %v", err)
		}

		go func() {
			log.Printf("Web UI Listening on: http://%s", webAddr)
			log.Printf("Web UI API target: %s", apiURL)

			if err := web.Listen(webAddr); err != nil {
				log.Printf("Web UI server error: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down servers...")
	if err := shutdown(app, web, svc); err != nil {
		log.Printf("Shutdown errors: %v", err)
	}
	log.Println("Servers exited")
}

// shutdown stops the listeners first so no request reaches a closed service
func shutdown(api, web *fiber.App, svc *service.Service) error {
	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	var result *multierror.Error
	if err := api.ShutdownWithContext(ctx); err != nil {
		result = multierror.Append(result, fmt.Errorf("api server: %w", err))
	}
	if web != nil {
		if err := web.ShutdownWithContext(ctx); err != nil {
			result = multierror.Append(result, fmt.Errorf("web server: %w", err))
		}
	}
	if err := svc.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("service: %w", err))
	}
	return result.ErrorOrNil()
}
