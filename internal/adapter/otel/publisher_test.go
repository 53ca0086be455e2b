package otel_test

import (
	"context"
	"fmt"
	"testing"

	"go.opentelemetry.io/otel/codes"

	adapter "github.com/vrcorp/videohive/internal/adapter/otel"
	"github.com/vrcorp/videohive/internal/domain"
)

// --- Mock publisher ---

type mockPublisher struct {
	changes []domain.RoleChange
}

func (m *mockPublisher) Publish(_ context.Context, change domain.RoleChange) error {
	m.changes = append(m.changes, change)
	return nil
}

type failingPublisher struct{}

func (p *failingPublisher) Publish(_ context.Context, _ domain.RoleChange) error {
	return fmt.Errorf("publish failed")
}

// --- Tests ---

func TestTracingPublisher_Publish_RecordsSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := &mockPublisher{}
	pub := adapter.NewTracingPublisher(inner)

	change := domain.RoleChange{Role: domain.RoleUser, Previous: domain.RoleGuest}
	if err := pub.Publish(context.Background(), change); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "ChangePublisher.Publish" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "ChangePublisher.Publish")
	}

	assertAttribute(t, spans[0], "role.new", "user")
	assertAttribute(t, spans[0], "role.previous", "guest")

	if len(inner.changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(inner.changes))
	}
}

func TestTracingPublisher_Publish_RecordsError(t *testing.T) {
	exporter := setupTestTracer(t)
	pub := adapter.NewTracingPublisher(&failingPublisher{})

	change := domain.RoleChange{Role: domain.RoleUser, Previous: domain.RoleGuest}
	if err := pub.Publish(context.Background(), change); err == nil {
		t.Fatal("expected error")
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}

	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", spans[0].Status.Code, codes.Error)
	}
}
