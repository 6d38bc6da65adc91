package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yamdb-api/config"
	"yamdb-api/logger"
	"yamdb-api/mailer"
	"yamdb-api/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New("ERROR", os.Stderr).Fatalf("invalid configuration: %v", err)
	}

	log := logger.New(cfg.LogLevel, os.Stderr)
	if envErr != nil {
		log.Info("No .env file found")
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := config.InitDB(cfg.Database, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer config.CloseDB(db)

	mail, err := mailer.New(cfg.Mail, log)
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}

	svc := router.NewServices(db, cfg, mail, log)

	if cfg.BootstrapAdmin() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := svc.Users.EnsureSuperuser(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
		cancel()
		if err != nil {
			log.Fatalf("superuser: %v", err)
		}
	}

	server := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router.SetupRouter(svc, cfg, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Noticef("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	log.Notice("Server stopped")
}
