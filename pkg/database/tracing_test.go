package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		tp.Shutdown(context.Background()) //nolint:errcheck
		otel.SetTracerProvider(prev)
	})

	return exporter
}

func TestTrace_Success(t *testing.T) {
	exporter := setupTestTracer(t)

	var qt *QueryTracer
	_, end := qt.Trace(context.Background(), "ListReviews", "SELECT * FROM reviews WHERE product_id = $1")
	end(nil)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}

	span := spans[0]
	if span.Name != "db.ListReviews" {
		t.Errorf("span name = %q, want %q", span.Name, "db.ListReviews")
	}

	attrs := make(map[string]string)
	for _, a := range span.Attributes {
		attrs[string(a.Key)] = a.Value.Emit()
	}
	if attrs["db.system"] != "postgresql" {
		t.Errorf("db.system = %q", attrs["db.system"])
	}
	if attrs["db.operation"] != "ListReviews" {
		t.Errorf("db.operation = %q", attrs["db.operation"])
	}
	if span.Status.Code != codes.Unset {
		t.Errorf("span status = %v, want Unset", span.Status.Code)
	}
}

func TestTrace_Error(t *testing.T) {
	exporter := setupTestTracer(t)

	var qt *QueryTracer
	_, end := qt.Trace(context.Background(), "MarkHelpful", "UPDATE reviews SET helpfulness = helpfulness + 1")
	end(errors.New("connection refused"))

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want Error", spans[0].Status.Code)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected error event to be recorded on span")
	}
}

func TestTrace_SlowQueryLogged(t *testing.T) {
	setupTestTracer(t)

	var buf bytes.Buffer
	qt := NewQueryTracer(time.Nanosecond, slog.New(slog.NewJSONHandler(&buf, nil)))

	_, end := qt.Trace(context.Background(), "RatingDistribution", "SELECT label, count(*) FROM reviews")
	end(errors.New("statement timeout"))

	out := buf.String()
	for _, want := range []string{"slow query detected", "RatingDistribution", "statement timeout"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestTrace_FastQueryNotLogged(t *testing.T) {
	setupTestTracer(t)

	var buf bytes.Buffer
	qt := NewQueryTracer(time.Hour, slog.New(slog.NewJSONHandler(&buf, nil)))

	_, end := qt.Trace(context.Background(), "FastSelect", "SELECT 1")
	end(nil)

	if buf.Len() != 0 {
		t.Errorf("did not expect a log line, got: %s", buf.String())
	}
}

func TestTrace_DisabledThreshold(t *testing.T) {
	setupTestTracer(t)

	var buf bytes.Buffer
	qt := NewQueryTracer(0, slog.New(slog.NewJSONHandler(&buf, nil)))

	_, end := qt.Trace(context.Background(), "AnyOp", "SELECT 1")
	end(nil)

	if buf.Len() != 0 {
		t.Errorf("zero threshold must disable logging, got: %s", buf.String())
	}
}
