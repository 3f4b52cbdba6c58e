package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/beetdev/recipe-service/internal/config"
	"github.com/beetdev/recipe-service/internal/handler"
	"github.com/beetdev/recipe-service/internal/integrations/camera"
	"github.com/beetdev/recipe-service/internal/integrations/directory"
	"github.com/beetdev/recipe-service/internal/pagination"
	"github.com/beetdev/recipe-service/internal/repository"
	"github.com/beetdev/recipe-service/internal/service"
	"github.com/beetdev/recipe-service/internal/utils/email"
	"github.com/beetdev/recipe-service/internal/validation"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	_ = godotenv.Load()
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	validate := validation.New()
	repo := repository.NewRepository(db)

	var mailer service.Mailer
	sender := email.NewSender(cfg, logger)
	if sender.Enabled() {
		mailer = sender
	} else {
		logger.Info("SMTP not configured, welcome mail disabled")
	}

	svc := service.NewService(repo, logger, cfg, mailer)
	directoryClient := directory.NewClient(cfg, validate, logger)
	cameraClient := camera.NewClient(cfg, validate, logger)

	pager := pagination.Config{
		DefaultLimit: cfg.PageDefaultLimit,
		MaxLimit:     cfg.PageMaxLimit,
	}
	h := handler.NewHandler(svc, directoryClient, cameraClient, pager, validate, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      h.Routes(cfg),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
