// Package main initializes and starts the smart-scheduler HTTP server,
// setting up configuration, logging, the database connection, repositories,
// services, sessions, handlers, and routing.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/ds9759045455-stack/smart-scheduler/internal/config"
	"github.com/ds9759045455-stack/smart-scheduler/internal/db"
	"github.com/ds9759045455-stack/smart-scheduler/internal/logger"
	"github.com/ds9759045455-stack/smart-scheduler/internal/repository"
	"github.com/ds9759045455-stack/smart-scheduler/internal/server/handler/http"
	"github.com/ds9759045455-stack/smart-scheduler/internal/service"
	"github.com/ds9759045455-stack/smart-scheduler/internal/session"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port
	dsn := options.DatabaseDSN

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection and bootstrap the schema.
	postgresDB, err := db.InitPostgres(dsn)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize the session manager and its expiry sweeper.
	sessions := session.NewManager(time.Duration(options.SessionTTLMinutes) * time.Minute)
	sessions.StartSweeper(context.Background(), time.Hour, zapLogger)

	// Initialize repositories for accounts and tasks.
	accountRepo := repository.NewPostgresAccountRepository(postgresDB)
	taskRepo := repository.NewPostgresTaskRepository(postgresDB)

	// Initialize business-logic services.
	accountService := service.NewAccountService(accountRepo)
	taskService := service.NewTaskService(taskRepo)

	// Create HTTP handlers for auth and task routes.
	authHandler := &http.AuthHandler{AccountService: accountService, Sessions: sessions, Log: zapLogger}
	taskHandler := &http.TaskHandler{TaskService: taskService, Sessions: sessions, Log: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, taskHandler, sessions, zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
