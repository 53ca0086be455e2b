package otel

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vrcorp/videohive/internal/domain"
)

const tracerName = "github.com/vrcorp/videohive/internal/adapter/otel"

// TracingStore wraps a domain.KeyValueStore with OpenTelemetry tracing.
// Each method creates a span with the key as an attribute and records
// errors. ErrKeyNotFound is a normal outcome and is not recorded as a
// span error.
type TracingStore struct {
	next   domain.KeyValueStore
	tracer trace.Tracer
}

// Compile-time check: TracingStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*TracingStore)(nil)

// NewTracingStore creates a tracing decorator around the given store.
func NewTracingStore(next domain.KeyValueStore) *TracingStore {
	return &TracingStore{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (s *TracingStore) Get(ctx context.Context, key string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "KeyValueStore.Get",
		trace.WithAttributes(attribute.String("kv.key", key)),
	)
	defer span.End()

	value, err := s.next.Get(ctx, key)
	if err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return value, err
}

func (s *TracingStore) Set(ctx context.Context, key, value string) error {
	ctx, span := s.tracer.Start(ctx, "KeyValueStore.Set",
		trace.WithAttributes(
			attribute.String("kv.key", key),
			attribute.Int("kv.value_size", len(value)),
		),
	)
	defer span.End()

	err := s.next.Set(ctx, key, value)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s *TracingStore) Delete(ctx context.Context, key string) error {
	ctx, span := s.tracer.Start(ctx, "KeyValueStore.Delete",
		trace.WithAttributes(attribute.String("kv.key", key)),
	)
	defer span.End()

	err := s.next.Delete(ctx, key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
