package telemetry

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	metricSDK "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	traceSDK "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	shutdownTimeout    = 5 * time.Second
	otlpExportInterval = 30 * time.Second
)

// Config holds telemetry configuration for a service
type Config struct {
	ServiceName    string
	ServiceVersion string
	OTLPEndpoint   string
}

// Telemetry bundles the tracer and meter of one service. Instruments are
// created once per name and reused.
type Telemetry struct {
	serviceName string
	tracer      trace.Tracer
	meter       metric.Meter
	instruments *instruments
}

// NewTelemetry binds a Telemetry to the global providers
func NewTelemetry(config Config) *Telemetry {
	return &Telemetry{
		serviceName: config.ServiceName,
		tracer:      otel.Tracer(config.ServiceName),
		meter:       otel.Meter(config.ServiceName),
		instruments: newInstruments(),
	}
}

// InitTelemetry installs the global tracer and meter providers. Metrics are
// always exposed to Prometheus; traces and metrics are pushed over OTLP only
// when an endpoint is configured. The returned func flushes and stops both
// providers.
func InitTelemetry(ctx context.Context, config Config) (*Telemetry, func(), error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
		),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build telemetry resource")
	}

	tracerProvider, err := newTracerProvider(ctx, res, config.OTLPEndpoint)
	if err != nil {
		return nil, nil, err
	}

	meterProvider, err := newMeterProvider(ctx, res, config.OTLPEndpoint)
	if err != nil {
		shutdownAll(tracerProvider.Shutdown)
		return nil, nil, err
	}

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdown := func() {
		shutdownAll(tracerProvider.Shutdown, meterProvider.Shutdown)
	}

	return NewTelemetry(config), shutdown, nil
}

func newTracerProvider(ctx context.Context, res *resource.Resource, endpoint string) (*traceSDK.TracerProvider, error) {
	opts := []traceSDK.TracerProviderOption{traceSDK.WithResource(res)}

	if endpoint != "" {
		exporter, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create otlp trace exporter")
		}
		opts = append(opts,
			traceSDK.WithBatcher(exporter),
			traceSDK.WithSampler(traceSDK.ParentBased(traceSDK.AlwaysSample())),
		)
	}

	return traceSDK.NewTracerProvider(opts...), nil
}

func newMeterProvider(ctx context.Context, res *resource.Resource, endpoint string) (*metricSDK.MeterProvider, error) {
	scrape, err := prometheus.New()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create prometheus exporter")
	}

	opts := []metricSDK.Option{
		metricSDK.WithResource(res),
		metricSDK.WithReader(scrape),
	}

	if endpoint != "" {
		exporter, err := otlpmetrichttp.New(ctx,
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure(),
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create otlp metric exporter")
		}
		opts = append(opts, metricSDK.WithReader(
			metricSDK.NewPeriodicReader(exporter, metricSDK.WithInterval(otlpExportInterval)),
		))
	}

	return metricSDK.NewMeterProvider(opts...), nil
}

func shutdownAll(fns ...func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, fn := range fns {
		_ = fn(ctx)
	}
}

// StartSpan opens a span on this service's tracer
func (t *Telemetry) StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// ServiceName is attached to every recorded metric
func (t *Telemetry) ServiceName() string {
	return t.serviceName
}

type contextKey struct{}

// unbound serves callers whose context carries no Telemetry
var unbound = NewTelemetry(Config{ServiceName: "unknown"})

// WithTelemetry injects telemetry into context
func WithTelemetry(ctx context.Context, tel *Telemetry) context.Context {
	return context.WithValue(ctx, contextKey{}, tel)
}

// FromContext extracts telemetry from context
func FromContext(ctx context.Context) *Telemetry {
	tel, _ := ctx.Value(contextKey{}).(*Telemetry)
	return tel
}

func fromContextOrUnbound(ctx context.Context) *Telemetry {
	if tel := FromContext(ctx); tel != nil {
		return tel
	}
	return unbound
}

// StartSpan opens a span with the context's Telemetry, or the global tracer
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return fromContextOrUnbound(ctx).StartSpan(ctx, name, opts...)
}

// GetServiceName returns service name from context
func GetServiceName(ctx context.Context) string {
	return fromContextOrUnbound(ctx).ServiceName()
}
