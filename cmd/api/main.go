package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	adminrepo "github.com/lumeboard/feedback-service/internal/admin/repo"
	feedbackrepo "github.com/lumeboard/feedback-service/internal/feedback/repo"
	moderationrepo "github.com/lumeboard/feedback-service/internal/moderation/repo"
	"github.com/lumeboard/feedback-service/internal/router"
	"github.com/lumeboard/feedback-service/pkg/database"
	"github.com/lumeboard/feedback-service/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.InitLogger(utilities.LogConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting feedback-service")

	// init db
	cfg := database.ConfigFromEnv()
	sqlDB, err := database.Connect(cfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	// wrap with sqlx for convenience in repos/services
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")
	defer sqlxDB.Close()

	// make sure the schema exists before taking traffic
	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelSchema()
	if err := adminrepo.NewAdminRepo(sqlxDB).EnsureTable(schemaCtx); err != nil {
		sugar.Fatalf("ensure admin_users table: %v", err)
	}
	if err := feedbackrepo.NewFeedbackRepo(sqlxDB).EnsureTable(schemaCtx); err != nil {
		sugar.Fatalf("ensure feedbacks table: %v", err)
	}
	if err := moderationrepo.NewSettingsRepo(sqlxDB).EnsureTable(schemaCtx); err != nil {
		sugar.Fatalf("ensure moderation_settings table: %v", err)
	}

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8000"
	}

	// mount http server
	handler := router.RegisterRoutes(sugar, sqlxDB, router.ConfigFromEnv())
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// run server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	sugar.Infow("service is running", "addr", addr)

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// shutdown http server
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
