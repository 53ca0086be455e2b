package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/vrcorp/videohive/internal/adapter/fsm"
	handler "github.com/vrcorp/videohive/internal/adapter/http"
	"github.com/vrcorp/videohive/internal/adapter/sqlite"
	"github.com/vrcorp/videohive/internal/app"
)

func TestEnvOrDefault_Fallback(t *testing.T) {
	v := envOrDefault("VIDEOHIVE_TEST_NONEXISTENT_KEY", "fallback")
	if v != "fallback" {
		t.Errorf("got %q, want %q", v, "fallback")
	}
}

func TestEnvOrDefault_EnvSet(t *testing.T) {
	t.Setenv("VIDEOHIVE_TEST_KEY", "custom")

	v := envOrDefault("VIDEOHIVE_TEST_KEY", "fallback")
	if v != "custom" {
		t.Errorf("got %q, want %q", v, "custom")
	}
}

// TestSmoke wires the full stack like main() and verifies it responds.
// The smoke test verifies HTTP wiring, not River.
func TestSmoke(t *testing.T) {
	dbPath := t.TempDir() + "/test.db"

	db, err := sqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := sqlite.NewStore(db)
	identity := app.NewIdentity(store, nil)
	roles := app.NewRoleStore(store, nil, nil)
	cart := app.NewCart(store, identity, roles, nil)
	wishlist := app.NewWishlist(store, identity, roles, nil)
	coordinator := app.NewCoordinator(roles, identity, cart, wishlist, fsm.New(), nil)
	coordinator.Start(context.Background())
	t.Cleanup(coordinator.Stop)

	tenants := sqlite.NewTenantDirectory(db)
	accounts := sqlite.NewAccountDirectory(db)

	svc := handler.Services{
		Identity:    identity,
		Roles:       roles,
		Cart:        cart,
		Wishlist:    wishlist,
		Coordinator: coordinator,
		TenantAuth:  app.NewTenantAuth(store, tenants, accounts, nil),
		Directory:   app.NewDirectory(tenants, accounts),
	}

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("videohive", "0.1.0"))
	handler.Register(api, svc)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	// Verify the server responds to the session probe.
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/api/v1/session", nil)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /api/v1/session failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var sess map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if sess["state"] != "anonymous" {
		t.Errorf("state = %v, want anonymous (fresh database)", sess["state"])
	}
}

// TestRun exercises the real run() function end-to-end: OTel, River, HTTP
// server, and graceful shutdown. It uses stdout OTel exporter and a temp
// database to avoid external dependencies.
func TestRun(t *testing.T) {
	t.Setenv("DATABASE_PATH", t.TempDir()+"/test-run.db")
	t.Setenv("PORT", "19876")
	t.Setenv("OTEL_EXPORTER", "stdout")
	t.Setenv("OTEL_ENVIRONMENT", "test")

	// Discard OTel stdout exporter output during the test.
	origStdout := os.Stdout
	devNull, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("opening /dev/null: %v", err)
	}
	os.Stdout = devNull
	t.Cleanup(func() {
		os.Stdout = origStdout
		devNull.Close()
	})

	errCh := make(chan error, 1)
	go func() { errCh <- run() }()

	// Wait for the HTTP server to become ready.
	serverURL := "http://localhost:19876"
	ready := false
	for i := 0; i < 50; i++ {
		req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, serverURL+"/api/v1/session", nil)
		resp, reqErr := http.DefaultClient.Do(req)
		if reqErr == nil {
			resp.Body.Close()
			ready = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !ready {
		t.Fatal("server did not start within 5 seconds")
	}

	// Verify the API responds correctly.
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, serverURL+"/api/v1/session", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /api/v1/session failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	// Send SIGINT to trigger graceful shutdown.
	proc, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("finding process: %v", err)
	}
	if err := proc.Signal(syscall.SIGINT); err != nil {
		t.Fatalf("sending SIGINT: %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("run() returned error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("run() did not exit within 10 seconds")
	}
}

// TestRun_InvalidDB verifies run() returns an error for an invalid database path.
func TestRun_InvalidDB(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/nonexistent/path/db.sqlite")
	t.Setenv("PORT", "19877")
	t.Setenv("OTEL_EXPORTER", "stdout")
	t.Setenv("OTEL_ENVIRONMENT", "test")

	// Discard OTel stdout output.
	origStdout := os.Stdout
	devNull, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("opening /dev/null: %v", err)
	}
	os.Stdout = devNull
	t.Cleanup(func() {
		os.Stdout = origStdout
		devNull.Close()
	})

	if err := run(); err == nil {
		t.Fatal("expected error for invalid database path, got nil")
	}
}
