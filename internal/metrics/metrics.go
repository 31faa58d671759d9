// Package metrics wires OpenTelemetry counters for the order pipeline and
// an HTTP duration histogram, exported over OTLP/HTTP. With no endpoint
// configured the meter provider has no reader and recording is a no-op.
package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

type Metrics struct {
	OrdersCreated   metric.Int64Counter
	RevenueTotal    metric.Float64Counter
	PaymentsCreated metric.Int64Counter
	RequestDuration metric.Float64Histogram

	provider *sdkmetric.MeterProvider
}

// Init builds the meter provider and instruments. endpoint is the OTLP
// collector host:port; when empty, metrics are created but never exported.
func Init(ctx context.Context, serviceName, endpoint string, insecure bool) (*Metrics, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("metrics resource: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if endpoint != "" {
		expOpts := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithURLPath("/v1/metrics"),
		}
		if insecure {
			expOpts = append(expOpts, otlpmetrichttp.WithInsecure())
		}
		exporter, err := otlpmetrichttp.New(ctx, expOpts...)
		if err != nil {
			return nil, fmt.Errorf("otlp exporter: %w", err)
		}
		reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
		opts = append(opts, sdkmetric.WithReader(reader))
	}

	provider := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(provider)
	meter := provider.Meter(serviceName)

	m := &Metrics{provider: provider}

	m.OrdersCreated, err = meter.Int64Counter(
		"orders_created_total",
		metric.WithDescription("Total number of orders created"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	m.RevenueTotal, err = meter.Float64Counter(
		"revenue_total",
		metric.WithDescription("Total order revenue"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	m.PaymentsCreated, err = meter.Int64Counter(
		"payments_created_total",
		metric.WithDescription("Total number of payment intents created"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	m.RequestDuration, err = meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordOrder counts one created order and its revenue.
func (m *Metrics) RecordOrder(ctx context.Context, paymentMethod string, total float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("payment_method", paymentMethod))
	m.OrdersCreated.Add(ctx, 1, attrs)
	m.RevenueTotal.Add(ctx, total, attrs)
}

// RecordPayment counts one payment intent by outcome status.
func (m *Metrics) RecordPayment(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.PaymentsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// RecordRequest records one served HTTP request.
func (m *Metrics) RecordRequest(ctx context.Context, method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Record(ctx, float64(elapsed.Milliseconds()), metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
		attribute.Int("http.response.status_code", status),
	))
}

func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil || m.provider == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}
