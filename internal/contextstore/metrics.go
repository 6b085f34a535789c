package contextstore

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/skillpathlabs/personalization/internal/contextstore"

// Metrics holds context-store instruments.
type Metrics struct {
	meter  metric.Meter
	logger *zap.Logger
	stored metric.Int64Counter
}

// NewMetrics creates a Metrics instance against the global meter provider.
func NewMetrics(logger *zap.Logger) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Metrics{
		meter:  otel.Meter(instrumentationName),
		logger: logger,
	}

	var err error
	m.stored, err = m.meter.Int64Counter(
		"personalization.contextstore.records_stored_total",
		metric.WithDescription("Total context records stored, by type and embedding presence"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		m.logger.Warn("failed to create records counter", zap.Error(err))
	}
	return m
}

// RecordStored records one successful append.
func (m *Metrics) RecordStored(ctx context.Context, t RecordType, embedded bool) {
	if m.stored == nil {
		return
	}
	m.stored.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", string(t)),
		attribute.Bool("embedded", embedded),
	))
}
