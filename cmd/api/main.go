package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"

	"github.com/cmlabs-hris/timesheet-core-go/internal/backend"
	"github.com/cmlabs-hris/timesheet-core-go/internal/config"
	appHTTP "github.com/cmlabs-hris/timesheet-core-go/internal/handler/http"
	"github.com/cmlabs-hris/timesheet-core-go/internal/persistence"
	"github.com/cmlabs-hris/timesheet-core-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-core-go/internal/pkg/inflight"
	authService "github.com/cmlabs-hris/timesheet-core-go/internal/service/auth"
	directoryService "github.com/cmlabs-hris/timesheet-core-go/internal/service/directory"
	enhanceService "github.com/cmlabs-hris/timesheet-core-go/internal/service/enhance"
	exportService "github.com/cmlabs-hris/timesheet-core-go/internal/service/export"
	paymentService "github.com/cmlabs-hris/timesheet-core-go/internal/service/payment"
	pricingService "github.com/cmlabs-hris/timesheet-core-go/internal/service/pricing"
	"github.com/cmlabs-hris/timesheet-core-go/internal/store"
)

const saveCoalesceWindow = 250 * time.Millisecond

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timesheet-core"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	var snapshots persistence.SnapshotStore
	switch cfg.Storage.Type {
	case "file":
		snapshots, err = persistence.NewFileStore(cfg.Storage.BasePath, logger)
		if err != nil {
			log.Fatal("Failed to initialize file storage: ", err)
		}
	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
		defer db.Close()
		snapshots, err = persistence.NewPostgresStore(db, logger)
		if err != nil {
			log.Fatal("Failed to initialize postgres storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	restored, err := snapshots.Load(ctx)
	if err != nil {
		logger.Error("load document snapshot", "error", err)
	}
	docs := store.New(cfg.Tickets.BaseURL, restored)

	saver := persistence.NewSaver(snapshots, logger, saveCoalesceWindow)
	docs.Subscribe(saver.Notify)
	saverDone := make(chan struct{})
	go func() {
		defer close(saverDone)
		saver.Run(ctx)
	}()

	sessions := authService.NewService(cfg.Backend.Token, logger)
	client := backend.NewClient(cfg.Backend, sessions, logger)
	client.OnUnauthorized(sessions.Invalidate)

	flights := inflight.NewRegistry()
	directorySvc := directoryService.NewService(client, flights, cfg.Directory.MinBusy, logger)
	pricingSvc := pricingService.NewService(client, logger)
	enhanceSvc := enhanceService.NewService(client, docs, flights, logger)
	paymentSvc := paymentService.NewService(client, docs, pricingSvc, sessions, cfg.Backend.PaymentTimeout, logger)
	exportSvc := exportService.NewService(client, docs, logger)

	// Startup reconciliation. Failures keep defaults or stale data, none of
	// them block serving.
	go func() {
		if err := sessions.Resolve(ctx, client); err != nil {
			logger.Warn("resolve session", "error", err)
		}
		if err := pricingSvc.Load(ctx); err != nil {
			logger.Warn("load pricing schedule", "error", err)
		}
		if err := directorySvc.Refresh(ctx); err != nil {
			logger.Warn("refresh assignee directory", "error", err)
		}
	}()

	router := appHTTP.NewRouter(
		cfg,
		logger,
		appHTTP.NewDocumentHandler(docs, enhanceSvc),
		appHTTP.NewDirectoryHandler(directorySvc),
		appHTTP.NewPricingHandler(pricingSvc),
		appHTTP.NewPaymentHandler(paymentSvc),
		appHTTP.NewExportHandler(exportSvc),
		appHTTP.NewAuthHandler(sessions),
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", "error", err)
		}
	}()

	logger.Info("server started", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
	}

	// Wait for the final snapshot flush before exiting.
	<-saverDone
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
