package fsm_test

import (
	"context"
	"errors"
	"testing"

	adapter "github.com/vrcorp/videohive/internal/adapter/fsm"
	"github.com/vrcorp/videohive/internal/domain"
)

func TestValidator_AllTransitions(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	for _, tr := range domain.SessionTransitions {
		dst, err := v.Apply(ctx, tr.Src, tr.Event)
		if err != nil {
			t.Errorf("Apply(%q, %q) unexpected error: %v", tr.Src, tr.Event, err)
			continue
		}
		if dst != tr.Dst {
			t.Errorf("Apply(%q, %q) = %q, want %q", tr.Src, tr.Event, dst, tr.Dst)
		}
	}
}

func TestValidator_LoginFromIdentifiedRejected(t *testing.T) {
	v := adapter.New()

	// The promotion edge is one-way and fires exactly once.
	_, err := v.Apply(context.Background(), domain.SessionIdentified, domain.EventLogin)
	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if trErr.Event != domain.EventLogin {
		t.Errorf("event = %q, want %q", trErr.Event, domain.EventLogin)
	}
	if trErr.Current != domain.SessionIdentified {
		t.Errorf("current = %q, want %q", trErr.Current, domain.SessionIdentified)
	}
}

func TestValidator_Promotion(t *testing.T) {
	v := adapter.New()

	to, err := v.Apply(context.Background(), domain.SessionAnonymous, domain.EventLogin)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if to != domain.SessionIdentified {
		t.Errorf("to = %q, want identified", to)
	}
}
