package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/vrcorp/videohive/internal/adapter/fsm"
	handler "github.com/vrcorp/videohive/internal/adapter/http"
	oteladapter "github.com/vrcorp/videohive/internal/adapter/otel"
	riveradapter "github.com/vrcorp/videohive/internal/adapter/river"
	"github.com/vrcorp/videohive/internal/adapter/sqlite"
	"github.com/vrcorp/videohive/internal/app"
	"github.com/vrcorp/videohive/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("videohive: %v", err)
	}
}

func run() error {
	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "videohive.db")

	ctx := context.Background()

	// --- Observability ---
	providers, err := oteladapter.Setup(ctx, oteladapter.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := oteladapter.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	if err := sqlite.Migrate(db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	store := oteladapter.NewTracingStore(sqlite.NewStore(db))
	tenants := sqlite.NewTenantDirectory(db)
	accounts := sqlite.NewAccountDirectory(db)

	riverClient, err := riveradapter.Setup(ctx, db)
	if err != nil {
		return fmt.Errorf("river: %w", err)
	}
	if err := riverClient.Start(ctx); err != nil {
		return fmt.Errorf("river start: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := riverClient.Stop(stopCtx); err != nil {
			log.Printf("river stop: %v", err)
		}
	}()

	publisher := oteladapter.NewTracingPublisher(riveradapter.NewPublisher(riverClient))

	// --- Application ---
	identity := app.NewIdentity(store, nil)
	roles := app.NewRoleStore(store, publisher, nil)
	cart := app.NewCart(store, identity, roles, nil)
	wishlist := app.NewWishlist(store, identity, roles, nil)

	coordinator := app.NewCoordinator(roles, identity, cart, wishlist, fsm.New(), nil)
	coordinator.Start(ctx)
	defer coordinator.Stop()

	svc := handler.Services{
		Identity:    identity,
		Roles:       roles,
		Cart:        cart,
		Wishlist:    wishlist,
		Coordinator: coordinator,
		TenantAuth:  app.NewTenantAuth(store, tenants, accounts, nil),
		Directory:   app.NewDirectory(tenants, accounts),
		AdminGuard:  app.NewRoleGuard(roles, "/login", domain.RoleAdmin, domain.RoleSuperAdmin),
	}

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(otelchi.Middleware("videohive", otelchi.WithChiRoutes(router)))

	api := humachi.New(router, huma.DefaultConfig("videohive", "0.1.0"))
	handler.Register(api, svc)

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("videohive listening on :%s", port)
		log.Printf("API docs: http://localhost:%s/docs", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-done:
	}

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Println("stopped")
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
