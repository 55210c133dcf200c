package digest

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("likedigest/services/digest")
var meter = otel.Meter("likedigest/services/digest")

var recordsCounter = mustCounter(meter.Int64Counter(
	"likedigest.records",
	metric.WithDescription("Records seen by the normalizer, by outcome."),
))

func mustCounter(c metric.Int64Counter, err error) metric.Int64Counter {
	if err != nil {
		panic(err)
	}
	return c
}
