package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/vrcorp/videohive/internal/adapter/sqlite"
	"github.com/vrcorp/videohive/internal/domain"
)

// newTestDB opens an in-memory SQLite database with migrations applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	// One connection so the in-memory database is shared across queries.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStore_GetMissingKey(t *testing.T) {
	store := sqlite.NewStore(newTestDB(t))

	_, err := store.Get(context.Background(), "videohive-cart-user")
	if !errors.Is(err, domain.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestStore_SetGetDelete(t *testing.T) {
	store := sqlite.NewStore(newTestDB(t))
	ctx := context.Background()

	if err := store.Set(ctx, domain.RoleKey, "user"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, err := store.Get(ctx, domain.RoleKey); err != nil || got != "user" {
		t.Errorf("Get = %q, %v; want user", got, err)
	}

	// Upsert overwrites in place.
	if err := store.Set(ctx, domain.RoleKey, "admin"); err != nil {
		t.Fatalf("Set (overwrite) failed: %v", err)
	}
	if got, _ := store.Get(ctx, domain.RoleKey); got != "admin" {
		t.Errorf("Get after overwrite = %q, want admin", got)
	}

	if err := store.Delete(ctx, domain.RoleKey); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, domain.RoleKey); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
	}

	// Deleting an absent key is a no-op.
	if err := store.Delete(ctx, domain.RoleKey); err != nil {
		t.Errorf("Delete (absent) = %v, want nil", err)
	}
}

func TestTenantDirectory_CreateAndGet(t *testing.T) {
	dir := sqlite.NewTenantDirectory(newTestDB(t))
	ctx := context.Background()

	tenant := domain.NewTenant("t-1", "Acme Academy", "acme")
	if err := dir.Create(ctx, tenant); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := dir.GetBySlug(ctx, "acme")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if got.ID != "t-1" {
		t.Errorf("ID = %q, want t-1", got.ID)
	}
	if got.Name != "Acme Academy" {
		t.Errorf("Name = %q, want Acme Academy", got.Name)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should not be zero")
	}

	byID, err := dir.GetByID(ctx, "t-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID.Slug != "acme" {
		t.Errorf("Slug = %q, want acme", byID.Slug)
	}
}

func TestTenantDirectory_NotFound(t *testing.T) {
	dir := sqlite.NewTenantDirectory(newTestDB(t))
	ctx := context.Background()

	if _, err := dir.GetBySlug(ctx, "nonexistent"); !errors.Is(err, domain.ErrTenantNotFound) {
		t.Errorf("GetBySlug err = %v, want ErrTenantNotFound", err)
	}
	if _, err := dir.GetByID(ctx, "nonexistent"); !errors.Is(err, domain.ErrTenantNotFound) {
		t.Errorf("GetByID err = %v, want ErrTenantNotFound", err)
	}
}

func TestTenantDirectory_DuplicateSlug(t *testing.T) {
	dir := sqlite.NewTenantDirectory(newTestDB(t))
	ctx := context.Background()

	if err := dir.Create(ctx, domain.NewTenant("t-1", "Acme Academy", "acme")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err := dir.Create(ctx, domain.NewTenant("t-2", "Acme Clone", "acme"))
	var conflict *domain.SlugConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SlugConflictError, got %v", err)
	}
	if conflict.Slug != "acme" {
		t.Errorf("conflict slug = %q, want acme", conflict.Slug)
	}
}

func TestTenantDirectory_List(t *testing.T) {
	dir := sqlite.NewTenantDirectory(newTestDB(t))
	ctx := context.Background()

	for _, slug := range []string{"acme", "beta", "gamma"} {
		if err := dir.Create(ctx, domain.NewTenant("t-"+slug, slug, slug)); err != nil {
			t.Fatalf("Create(%s) failed: %v", slug, err)
		}
	}

	tenants, err := dir.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tenants) != 3 {
		t.Errorf("List returned %d tenants, want 3", len(tenants))
	}
}

func TestAccountDirectory_CreateAndGet(t *testing.T) {
	dir := sqlite.NewAccountDirectory(newTestDB(t))
	ctx := context.Background()

	account := domain.NewAccount("acc-1", "owner@acme.test", "Owner", domain.RoleAdmin)
	account.PasswordHash = "$2a$10$fakehash"
	account.OwnsTenant = true
	if err := dir.Create(ctx, account); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := dir.GetByEmail(ctx, "owner@acme.test")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.Role != domain.RoleAdmin {
		t.Errorf("Role = %q, want admin", got.Role)
	}
	if got.PasswordHash != "$2a$10$fakehash" {
		t.Errorf("PasswordHash = %q", got.PasswordHash)
	}
	if !got.OwnsTenant {
		t.Error("OwnsTenant flag lost")
	}
}

func TestAccountDirectory_NotFoundAndDuplicateEmail(t *testing.T) {
	dir := sqlite.NewAccountDirectory(newTestDB(t))
	ctx := context.Background()

	if _, err := dir.GetByEmail(ctx, "ghost@acme.test"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("GetByEmail err = %v, want ErrAccountNotFound", err)
	}

	if err := dir.Create(ctx, domain.NewAccount("acc-1", "owner@acme.test", "Owner", domain.RoleUser)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	err := dir.Create(ctx, domain.NewAccount("acc-2", "owner@acme.test", "Clone", domain.RoleUser))
	var conflict *domain.EmailConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected EmailConflictError, got %v", err)
	}
}
