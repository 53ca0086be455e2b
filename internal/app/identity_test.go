package app_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/vrcorp/videohive/internal/adapter/memory"
	"github.com/vrcorp/videohive/internal/app"
	"github.com/vrcorp/videohive/internal/domain"
)

// failingStore simulates unavailable storage.
type failingStore struct{}

func (failingStore) Get(_ context.Context, _ string) (string, error) {
	return "", fmt.Errorf("storage unavailable")
}

func (failingStore) Set(_ context.Context, _, _ string) error {
	return fmt.Errorf("storage unavailable")
}

func (failingStore) Delete(_ context.Context, _ string) error {
	return fmt.Errorf("storage unavailable")
}

func TestIdentity_GetOrCreate_Idempotent(t *testing.T) {
	identity := app.NewIdentity(memory.NewStore(), nil)
	ctx := context.Background()

	first := identity.GetOrCreate(ctx)
	second := identity.GetOrCreate(ctx)

	if first == "" {
		t.Fatal("expected a minted guest id")
	}
	if first != second {
		t.Errorf("GetOrCreate not idempotent: %q then %q", first, second)
	}
	if !strings.HasPrefix(first, "guest-") {
		t.Errorf("guest id %q missing prefix", first)
	}
}

func TestIdentity_ClearMintsFreshID(t *testing.T) {
	identity := app.NewIdentity(memory.NewStore(), nil)
	ctx := context.Background()

	first := identity.GetOrCreate(ctx)
	identity.Clear(ctx)
	second := identity.GetOrCreate(ctx)

	if first == second {
		t.Errorf("expected a fresh id after Clear, got %q twice", first)
	}
}

func TestIdentity_PeekDoesNotMint(t *testing.T) {
	store := memory.NewStore()
	identity := app.NewIdentity(store, nil)
	ctx := context.Background()

	if got := identity.Peek(ctx); got != "" {
		t.Errorf("Peek on empty store = %q, want empty", got)
	}
	if _, err := store.Get(ctx, domain.GuestIDKey); err == nil {
		t.Error("Peek must not persist an id")
	}

	minted := identity.GetOrCreate(ctx)
	if got := identity.Peek(ctx); got != minted {
		t.Errorf("Peek = %q, want %q", got, minted)
	}
}

func TestIdentity_StorageFailureDegradesToEphemeral(t *testing.T) {
	identity := app.NewIdentity(failingStore{}, nil)
	ctx := context.Background()

	first := identity.GetOrCreate(ctx)
	second := identity.GetOrCreate(ctx)

	if first == "" || second == "" {
		t.Fatal("expected ephemeral ids despite storage failure")
	}
	// Without persistence every call produces a fresh id.
	if first == second {
		t.Errorf("expected distinct ephemeral ids, got %q twice", first)
	}
}
