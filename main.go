package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/intake/cliparse"
	"github.com/danielhkuo/intake/db"
	"github.com/danielhkuo/intake/middleware"
	"github.com/danielhkuo/intake/router"
	"github.com/danielhkuo/intake/seed"
)

func main() {
	// Load .env if present; real env variables win
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Import the questionnaire catalog if a seed directory was given
	if cfg.SeedDir != "" {
		if err := seed.LoadDir(dbConn, cfg.SeedDir); err != nil {
			slog.Error("seed import failed", "error", err)
			os.Exit(1)
		}
	}

	// Bootstrap an admin account when credentials are configured
	if adminUser := os.Getenv("ADMIN_USERNAME"); adminUser != "" {
		adminPassword := os.Getenv("ADMIN_PASSWORD")
		if adminPassword == "" {
			slog.Error("ADMIN_USERNAME set without ADMIN_PASSWORD")
			os.Exit(1)
		}
		if err := seed.EnsureAdmin(dbConn, adminUser, adminPassword); err != nil {
			slog.Error("admin bootstrap failed", "error", err)
			os.Exit(1)
		}
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
