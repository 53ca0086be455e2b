package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vrcorp/videohive/internal/domain"
)

// TracingPublisher wraps a domain.ChangePublisher with OpenTelemetry tracing.
type TracingPublisher struct {
	next   domain.ChangePublisher
	tracer trace.Tracer
}

// Compile-time check: TracingPublisher implements domain.ChangePublisher.
var _ domain.ChangePublisher = (*TracingPublisher)(nil)

// NewTracingPublisher creates a tracing decorator around the given publisher.
func NewTracingPublisher(next domain.ChangePublisher) *TracingPublisher {
	return &TracingPublisher{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (p *TracingPublisher) Publish(ctx context.Context, change domain.RoleChange) error {
	ctx, span := p.tracer.Start(ctx, "ChangePublisher.Publish",
		trace.WithAttributes(
			attribute.String("role.new", string(change.Role)),
			attribute.String("role.previous", string(change.Previous)),
		),
	)
	defer span.End()

	err := p.next.Publish(ctx, change)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
