package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// instruments caches metric instruments by name
type instruments struct {
	mu         sync.Mutex
	counters   map[string]metric.Int64Counter
	histograms map[string]metric.Float64Histogram
	gauges     map[string]metric.Float64Gauge
}

func newInstruments() *instruments {
	return &instruments{
		counters:   make(map[string]metric.Int64Counter),
		histograms: make(map[string]metric.Float64Histogram),
		gauges:     make(map[string]metric.Float64Gauge),
	}
}

func (t *Telemetry) counter(name, description string) (metric.Int64Counter, error) {
	t.instruments.mu.Lock()
	defer t.instruments.mu.Unlock()

	if c, ok := t.instruments.counters[name]; ok {
		return c, nil
	}
	c, err := t.meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		return nil, err
	}
	t.instruments.counters[name] = c
	return c, nil
}

func (t *Telemetry) histogram(name, description string) (metric.Float64Histogram, error) {
	t.instruments.mu.Lock()
	defer t.instruments.mu.Unlock()

	if h, ok := t.instruments.histograms[name]; ok {
		return h, nil
	}
	h, err := t.meter.Float64Histogram(name, metric.WithDescription(description))
	if err != nil {
		return nil, err
	}
	t.instruments.histograms[name] = h
	return h, nil
}

func (t *Telemetry) gauge(name, description string) (metric.Float64Gauge, error) {
	t.instruments.mu.Lock()
	defer t.instruments.mu.Unlock()

	if g, ok := t.instruments.gauges[name]; ok {
		return g, nil
	}
	g, err := t.meter.Float64Gauge(name, metric.WithDescription(description))
	if err != nil {
		return nil, err
	}
	t.instruments.gauges[name] = g
	return g, nil
}

func (t *Telemetry) withService(attrs []attribute.KeyValue) metric.MeasurementOption {
	return metric.WithAttributes(append(attrs, attribute.String("service", t.serviceName))...)
}

// RecordCounter adds value to a counter. Instrument errors drop the sample.
func RecordCounter(ctx context.Context, name, description string, value int64, attrs ...attribute.KeyValue) {
	tel := fromContextOrUnbound(ctx)
	if c, err := tel.counter(name, description); err == nil {
		c.Add(ctx, value, tel.withService(attrs))
	}
}

// RecordHistogram records one observation
func RecordHistogram(ctx context.Context, name, description string, value float64, attrs ...attribute.KeyValue) {
	tel := fromContextOrUnbound(ctx)
	if h, err := tel.histogram(name, description); err == nil {
		h.Record(ctx, value, tel.withService(attrs))
	}
}

// RecordGauge sets the current value of a gauge
func RecordGauge(ctx context.Context, name, description string, value float64, attrs ...attribute.KeyValue) {
	tel := fromContextOrUnbound(ctx)
	if g, err := tel.gauge(name, description); err == nil {
		g.Record(ctx, value, tel.withService(attrs))
	}
}
