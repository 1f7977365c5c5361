package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	metricSDK "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestFromContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	assert.Equal(t, "unknown", GetServiceName(context.Background()))

	tel := NewTelemetry(OfferServiceConfig)
	ctx := WithTelemetry(context.Background(), tel)
	assert.Same(t, tel, FromContext(ctx))
	assert.Equal(t, "offers-service", GetServiceName(ctx))
}

func TestConfigBuilders(t *testing.T) {
	cfg := OfferServiceConfig.WithOTLPEndpoint("collector:4318").WithVersion("2.0.0")
	assert.Equal(t, "collector:4318", cfg.OTLPEndpoint)
	assert.Equal(t, "2.0.0", cfg.ServiceVersion)
	assert.Empty(t, OfferServiceConfig.OTLPEndpoint)
}

func TestRecordHelpersWithoutProvider(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordCounter(ctx, "offer_operations_total", "test", 1)
		RecordHistogram(ctx, "offer_operation_duration_seconds", "test", 0.5)
		RecordGauge(ctx, "offer_pending", "test", 3)
	})
}

func TestRecordHelpersReuseInstruments(t *testing.T) {
	reader := metricSDK.NewManualReader()
	otel.SetMeterProvider(metricSDK.NewMeterProvider(metricSDK.WithReader(reader)))

	ctx := WithTelemetry(context.Background(), NewTelemetry(OfferServiceConfig))
	RecordGauge(ctx, "offer_assignment_attempts_pending", "test", 4)
	RecordGauge(ctx, "offer_assignment_attempts_pending", "test", 2)
	RecordCounter(ctx, "offer_operations_total", "test", 1)
	RecordCounter(ctx, "offer_operations_total", "test", 2)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	byName := map[string]metricdata.Metrics{}
	for _, scope := range rm.ScopeMetrics {
		if scope.Scope.Name != OfferServiceConfig.ServiceName {
			continue
		}
		for _, m := range scope.Metrics {
			byName[m.Name] = m
		}
	}

	gauge, ok := byName["offer_assignment_attempts_pending"].Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, 2.0, gauge.DataPoints[0].Value)
	service, _ := gauge.DataPoints[0].Attributes.Value("service")
	assert.Equal(t, "offers-service", service.AsString())

	sum, ok := byName["offer_operations_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(3), sum.DataPoints[0].Value)
}

func TestMiddleware(t *testing.T) {
	tel := NewTelemetry(OfferServiceConfig)

	r := chi.NewRouter()
	r.Use(Middleware(tel))
	r.Get("/api/offers/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.NotNil(t, FromContext(r.Context()))
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/offers/12", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestGetStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", getStatusClass(201))
	assert.Equal(t, "4xx", getStatusClass(409))
	assert.Equal(t, "5xx", getStatusClass(502))
	assert.Equal(t, "unknown", getStatusClass(0))
}
