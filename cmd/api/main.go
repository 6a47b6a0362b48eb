package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"heritage-archive/docs"
	"heritage-archive/interfaces/api/handlers"
	"heritage-archive/interfaces/api/middleware"
	"heritage-archive/interfaces/api/routes"
	"heritage-archive/pkg/config"
	"heritage-archive/pkg/di"
	"heritage-archive/pkg/logger"
)

// @title Family Heritage Archive API
// @version 1.0
// @description Family directory, member submissions and the moderation workflow behind them.

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. The auth_token cookie is accepted as well.

const version = "1.0.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heritage-archive",
		Short: "Family heritage archive API server",
		// Running without a subcommand serves, same as before the CLI existed
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("heritage-archive version %s\n", version)
		},
	})

	return cmd
}

// bootstrap loads config and starts the file logger it points at.
func bootstrap() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Log.Dir, cfg.Log.Console); err != nil {
		fmt.Printf("Warning: Failed to initialize logger: %v\n", err)
	}
	logger.Default().SetLevel(cfg.Log.Level)
	logger.Startup("logger_init", "Logger initialized", map[string]interface{}{
		"dir":   cfg.Log.Dir,
		"level": cfg.Log.Level,
	})

	return cfg, nil
}

func migrate() error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}

	container := di.NewContainer(cfg)
	defer container.Cleanup()

	if err := container.OpenDatabase(); err != nil {
		logger.StartupError("migrate_failed", "Migration failed", err, nil)
		return err
	}
	logger.Startup("migrate_done", "Migrations applied", nil)
	return nil
}

func serve() error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}

	// Initialize DI container
	container := di.NewContainer(cfg)

	// Initialize all dependencies
	if err := container.Initialize(); err != nil {
		logger.StartupError("container_init_failed", "Failed to initialize container", err, nil)
		return err
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		AppName:      cfg.App.Name,
	})

	// Setup middleware
	app.Use(middleware.Recover())
	app.Use(middleware.RequestID())
	app.Use(middleware.LoggerMiddleware())
	app.Use(container.Metrics.Middleware())
	app.Use(middleware.CorsMiddleware(cfg.App.FrontendURL))

	// Create handlers from services
	h := handlers.NewHandlers(
		container.GetHandlerServices(),
		container.GetHandlerRepositories(),
		container.DB,
		container.RedisClient,
		cfg,
	)

	// Swagger - use empty host so it works on any domain
	docs.SwaggerInfo.Host = ""
	docs.SwaggerInfo.Version = version

	// Setup routes
	routes.SetupRoutes(app, h, routes.Deps{
		Config:      cfg,
		AuthService: container.AuthService,
		Metrics:     container.Metrics,
		WSManager:   container.WSManager,
	})

	setupGracefulShutdown(app, container)

	// Start server
	port := cfg.App.Port
	logger.Startup("server_starting", "Server starting", map[string]interface{}{
		"port":        port,
		"environment": cfg.App.Env,
		"health":      fmt.Sprintf("http://localhost:%s/health", port),
		"api":         fmt.Sprintf("http://localhost:%s/api/v1", port),
		"swagger":     fmt.Sprintf("http://localhost:%s/swagger/index.html", port),
		"websocket":   fmt.Sprintf("ws://localhost:%s/ws", port),
		"metrics":     fmt.Sprintf("http://localhost:%s/metrics", port),
	})

	if err := app.Listen(":" + port); err != nil {
		logger.StartupError("server_failed", "Server failed to start", err, nil)
		return err
	}
	return nil
}

func setupGracefulShutdown(app *fiber.App, container *di.Container) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Startup("shutdown_started", "Gracefully shutting down", nil)

		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.StartupError("shutdown_failed", "Error stopping HTTP server", err, nil)
		}
		if err := container.Cleanup(); err != nil {
			logger.StartupError("cleanup_failed", "Error during cleanup", err, nil)
		}

		logger.Startup("shutdown_complete", "Shutdown complete", nil)
		logger.Default().Close()
	}()
}
