package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Gautam3767/product-catalog-backend/config"
	"github.com/Gautam3767/product-catalog-backend/database"
	"github.com/Gautam3767/product-catalog-backend/handlers"
	"github.com/Gautam3767/product-catalog-backend/logger"
	"github.com/Gautam3767/product-catalog-backend/repository"
	"github.com/Gautam3767/product-catalog-backend/services"
)

// @title Product Catalog API
// @version 1.0
// @description Public catalog, contact form and admin back-office, backed by MongoDB.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Configuration: .env (optional) then the process environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Database ---
	client, err := database.Connect(ctx, cfg.Mongo, log)
	if err != nil {
		return err
	}
	defer func() {
		// The signal context is already cancelled here.
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		database.Disconnect(dctx, client, log)
	}()

	db := client.Database(cfg.Mongo.Database)
	if err := database.EnsureIndexes(ctx, db, log); err != nil {
		return err
	}
	repos := repository.New(db)

	// --- Services ---
	catalog := services.NewCatalogService(repos.NavbarCategories, repos.Categories, repos.SubCategories, repos.Products, log)
	contacts := services.NewContactService(repos.Contacts, services.NewNotifier(cfg.Mail, log), log)
	dashboard := services.NewDashboardService(services.DashboardDeps{
		NavbarCategories: repos.NavbarCategories,
		Categories:       repos.Categories,
		SubCategories:    repos.SubCategories,
		Products:         repos.Products,
		Contacts:         repos.Contacts,
		Snapshots:        repos.Dashboards,
	}, log)
	tokens := services.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	auth := services.NewAuthService(tokens, cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash, log)
	uploads, err := services.NewUploadService(cfg.Upload.Dir, cfg.Upload.MaxBytes, log)
	if err != nil {
		return err
	}

	// --- HTTP ---
	h := handlers.New(handlers.Deps{
		Catalog:   catalog,
		Contacts:  contacts,
		Dashboard: dashboard,
		Auth:      auth,
		Uploads:   uploads,
		DB: handlers.PingerFunc(func(ctx context.Context) error {
			return database.Ping(ctx, client)
		}),
		Log:           log,
		DBTimeout:     cfg.Mongo.DBTimeout,
		CORSOrigins:   cfg.CORS.Origins(),
		SecureCookies: cfg.Auth.CookieSecure,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handlers.NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
		return err
	}
	log.WithFields(logrus.Fields{"addr": srv.Addr}).Info("Server stopped")
	return nil
}
