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

	"go-cheatsheets-app/internal/auth"
	"go-cheatsheets-app/internal/cache"
	"go-cheatsheets-app/internal/config"
	"go-cheatsheets-app/internal/data"
	"go-cheatsheets-app/internal/handler"
	"go-cheatsheets-app/internal/logger"
	"go-cheatsheets-app/internal/middleware"
	"go-cheatsheets-app/internal/service"
	"go-cheatsheets-app/internal/upload"
	"go-cheatsheets-app/internal/view"
	"go-cheatsheets-app/web"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Database Initialization and Migration ---
	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(cfg.DB.DSN, "migrations"); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB.DSN)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- Session Management Setup ---
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.New(db.DB)
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Server.TLS.Enabled

	// --- Authorization Setup ---
	log.Info("Initializing authorization...")
	enforcer, err := auth.NewEnforcer("sqlite", cfg.DB.DSN, "auth_model.conf")
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)
	log.Info("Enforcer initialized and policies seeded.")

	// --- View Template Initialization ---
	log.Info("Initializing view templates...")
	viewService, err := view.New(web.TemplateFS)
	if err != nil {
		log.Fatal(err, "Failed to initialize view templates")
	}
	log.Info("View templates initialized.")

	// --- Cache Initialization ---
	log.Info("Initializing SQLite cache...")
	viewCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer viewCache.Close()
	log.Info("Cache initialized.")

	// --- Upload Storage ---
	logoStore, err := upload.NewLogoStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal(err, "Failed to initialize logo storage")
	}

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	categoryRepository := data.NewCategoryRepository(db)
	topicRepository := data.NewTopicRepository(db)
	sectionRepository := data.NewSectionRepository(db)
	itemRepository := data.NewSectionItemRepository(db)
	userRepository := data.NewUserRepository(db)

	contentService := service.NewContentService(categoryRepository, topicRepository, sectionRepository, itemRepository, viewCache)
	searchService := service.NewSearchService(topicRepository, sectionRepository, itemRepository)
	authService := service.NewAuthService(userRepository)
	if err := authService.EnsureAdmin(context.Background()); err != nil {
		log.Fatal(err, "Failed to seed the admin account")
	}

	pageHandler := handler.NewPageHandler(contentService, viewService, log)
	authHandler := handler.NewAuthHandler(authService, sessionManager, viewService, log)
	searchHandler := handler.NewSearchHandler(contentService, searchService)
	adminHandler := handler.NewAdminHandler(contentService, logoStore, sessionManager, viewService, log)
	seoHandler := handler.NewSeoHandler(contentService, cfg.Server.BaseURL)

	authzMiddleware := middleware.Authorizer(enforcer, sessionManager)
	errorMiddleware := middleware.Error(log, viewService)

	// --- Router Setup ---
	// The router is the central hub that directs incoming requests to the correct handlers.
	router := handler.NewRouter(pageHandler, authHandler, searchHandler, adminHandler, seoHandler,
		authzMiddleware, errorMiddleware, sessionManager, logoStore.Dir())

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
