package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tableside/internal/cache"
	"tableside/internal/config"
	"tableside/internal/database"
	"tableside/internal/logger"
	"tableside/internal/messaging"
	"tableside/internal/server"
	"tableside/internal/services/auth"
	"tableside/internal/services/menu"
	"tableside/internal/services/order"
	"tableside/internal/services/stats"
	"tableside/internal/services/table"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to configuration file")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New("tableside-api")
	requestID := logger.GenerateRequestID()

	log.Info("service_started", "Starting tableside API", requestID, map[string]interface{}{
		"port": cfg.Server.Port,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("service_failed", "API server failed", requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	sessions := cache.NewRedisCache(cfg.RedisAddr(), "tableside")

	// Order events are optional; without a broker the API runs standalone.
	var publisher *messaging.Publisher
	if cfg.RabbitMQ.Enabled {
		conn, err := messaging.New(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize messaging: %w", err)
		}
		defer conn.Close()

		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)
		publisher = messaging.NewPublisher(conn, log)
	}

	authService := auth.NewService(auth.NewRepository(db), sessions,
		time.Duration(cfg.Auth.SessionTTLHours)*time.Hour, log)
	menuService := menu.NewService(menu.NewRepository(db), log)
	tableService := table.NewService(table.NewRepository(db), cfg.Server.FrontendURL, log)
	statsService := stats.NewService(stats.NewRepository(db), sessions, log)

	var events order.EventPublisher
	if publisher != nil {
		events = publisher
	}
	orderService := order.NewService(order.NewRepository(db), events, log)

	handlers := server.Handlers{
		Auth:  auth.NewHandler(authService, log),
		Menu:  menu.NewHandler(menuService, cfg.Server.UploadsDir, log),
		Table: table.NewHandler(tableService, log),
		Order: order.NewHandler(orderService, log),
		Stats: stats.NewHandler(statsService, log),
	}
	mw := server.NewMiddleware(authService, log)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.NewRouter(handlers, mw, cfg.Server.UploadsDir),
	}

	go func() {
		log.Info("server_listening", fmt.Sprintf("API listening on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return srv.Shutdown(shutdownCtx)
}
