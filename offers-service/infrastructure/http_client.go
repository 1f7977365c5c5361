package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/draftea/offer-system/shared/logging"
	"github.com/draftea/offer-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const maxErrorBodyBytes = 4 << 10

// DownstreamConfig configures an outbound JSON API client
type DownstreamConfig struct {
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
}

// StatusError is returned for a non 2xx downstream response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// jsonAPIClient posts JSON to one downstream service with a timeout and a
// token bucket shared by all callers
type jsonAPIClient struct {
	service string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

func newJSONAPIClient(service string, cfg DownstreamConfig, logger *slog.Logger) *jsonAPIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &jsonAPIClient{
		service: service,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// postJSON sends in to path and decodes a 2xx response into out
func (c *jsonAPIClient) postJSON(ctx context.Context, path string, in, out interface{}) error {
	ctx, span := telemetry.StartSpan(ctx, c.service+".post",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("peer.service", c.service),
			attribute.String("http.route", path),
		),
	)
	defer span.End()

	start := time.Now()
	status := "error"
	defer func() {
		telemetry.RecordHistogram(ctx, "downstream_request_duration_seconds", "Downstream request duration", time.Since(start).Seconds(),
			attribute.String("service", c.service),
			attribute.String("status", status),
		)
	}()

	fail := func(err error) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fail(errors.Wrapf(err, "%s rate limiter", c.service))
	}

	body, err := json.Marshal(in)
	if err != nil {
		return fail(errors.Wrapf(err, "failed to encode %s request", c.service))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fail(errors.Wrapf(err, "failed to build %s request", c.service))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(errors.Wrapf(err, "%s request failed", c.service))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		logging.FromContext(ctx, c.logger).Warn("downstream call rejected",
			slog.String("downstream", c.service),
			slog.Int("status_code", resp.StatusCode),
		)
		return fail(&StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(errors.Wrapf(err, "failed to decode %s response", c.service))
	}

	status = "success"
	return nil
}

// opaqueID accepts an identifier encoded either as a JSON string or number
func opaqueID(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return num.String()
	}

	return ""
}
