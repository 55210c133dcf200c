package testutil

import (
	"likedigest/lib/telemetry"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var (
	setupOnce sync.Once
	spans     *tracetest.InMemoryExporter
)

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// SetupTelemetry routes slog output to the test log and records every span
// ended during the test. The tracer provider is installed once per process
// since tracers obtained from the global provider bind to the first one set.
func SetupTelemetry(t testing.TB) *tracetest.InMemoryExporter {
	setupOnce.Do(func() {
		spans = tracetest.NewInMemoryExporter()
		otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(spans)))
	})
	spans.Reset()

	previous := slog.Default()
	slog.SetDefault(telemetry.NewLogger(testWriter{t: t}, true, false))
	t.Cleanup(func() {
		slog.SetDefault(previous)
	})

	return spans
}

// SpanNames lists the names of the recorded spans in the order they ended.
func SpanNames(exporter *tracetest.InMemoryExporter) []string {
	var names []string
	for _, s := range exporter.GetSpans() {
		names = append(names, s.Name)
	}
	return names
}
