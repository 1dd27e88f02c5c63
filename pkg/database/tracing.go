package database

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/database"

// QueryTracer wraps statements in OpenTelemetry client spans and logs those
// that take longer than SlowThreshold. A nil *QueryTracer still traces but
// never logs. A zero threshold disables slow query logging.
type QueryTracer struct {
	SlowThreshold time.Duration
	Logger        *slog.Logger
}

// NewQueryTracer creates a tracer that logs statements slower than threshold.
func NewQueryTracer(threshold time.Duration, logger *slog.Logger) *QueryTracer {
	return &QueryTracer{SlowThreshold: threshold, Logger: logger}
}

// Trace starts a span for a database operation. The returned function must be
// called when the operation completes:
//
//	ctx, end := qt.Trace(ctx, "ListReviews", query)
//	defer func() { end(err) }()
func (qt *QueryTracer) Trace(ctx context.Context, operation, statement string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "db."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", operation),
			attribute.String("db.statement", statement),
		),
	)

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		if qt == nil || qt.SlowThreshold <= 0 || qt.Logger == nil {
			return
		}
		if elapsed := time.Since(start); elapsed >= qt.SlowThreshold {
			attrs := []any{
				slog.String("operation", operation),
				slog.String("statement", statement),
				slog.Duration("duration", elapsed),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}
			qt.Logger.WarnContext(ctx, "slow query detected", attrs...)
		}
	}
}
