package query

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("github.com/Cogwheel-Validator/spectra-explorer/explorer/query")

	requestCounter  metric.Int64Counter
	requestDuration metric.Float64Histogram
)

func init() {
	var err error
	requestCounter, err = meter.Int64Counter("explorer.api.requests",
		metric.WithDescription("Requests sent to the chain REST API"),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create request counter")
	}
	requestDuration, err = meter.Float64Histogram("explorer.api.request.duration",
		metric.WithDescription("Duration of REST API requests including retries"),
		metric.WithUnit("s"),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create request histogram")
	}
}

func recordRequest(ctx context.Context, endpoint string, err error, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.Bool("error", err != nil),
	)
	if requestCounter != nil {
		requestCounter.Add(ctx, 1, attrs)
	}
	if requestDuration != nil {
		requestDuration.Record(ctx, elapsed.Seconds(), attrs)
	}
}
