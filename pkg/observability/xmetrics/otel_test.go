package xmetrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newTestObserver(t *testing.T) (Observer, *tracetest.InMemoryExporter, *sdkmetric.ManualReader) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	obs, err := NewOTelObserver(WithTracerProvider(tp), WithMeterProvider(mp), WithInstrumentationName("test"))
	require.NoError(t, err)
	return obs, exporter, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestOTelObserver_Span(t *testing.T) {
	obs, exporter, _ := newTestObserver(t)

	ctx, span := Start(context.Background(), obs, SpanOptions{
		Component: "xmongo",
		Operation: "find",
		Kind:      KindClient,
		Attrs:     append(DB("mongodb", "app", "users"), Duration("timeout", time.Second)),
	})
	assert.True(t, trace.SpanFromContext(ctx).SpanContext().IsValid())
	span.End(Result{Attrs: []Attr{Int("count", 3), Any("nil", nil)}})
	span.End(Result{Err: errors.New("ignored")})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "xmongo.find", s.Name)
	assert.Equal(t, trace.SpanKindClient, s.SpanKind)
	assert.Equal(t, codes.Ok, s.Status.Code)
	assert.Contains(t, s.Attributes, attribute.String("db.collection", "users"))
	assert.Contains(t, s.Attributes, attribute.Int64("timeout", int64(time.Second)))
	assert.Contains(t, s.Attributes, attribute.Int("count", 3))
}

func TestOTelObserver_ErrorAndMetrics(t *testing.T) {
	obs, exporter, reader := newTestObserver(t)

	_, span := obs.Start(context.Background(), SpanOptions{Component: "xmongo", Operation: "count"})
	span.End(Result{Err: errors.New("boom")})

	_, span = obs.Start(context.Background(), SpanOptions{})
	span.End(Result{})

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "boom", spans[0].Status.Description)
	assert.Equal(t, "unknown.unknown", spans[1].Name)

	metrics := collect(t, reader)
	require.Contains(t, metrics, MetricOperationTotal)
	require.Contains(t, metrics, MetricOperationDuration)

	sum, ok := metrics[MetricOperationTotal].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var errCount int64
	for _, dp := range sum.DataPoints {
		if v, _ := dp.Attributes.Value("status"); v.AsString() == string(StatusError) {
			errCount += dp.Value
		}
	}
	assert.Equal(t, int64(1), errCount)
}

func TestOTelObserver_CanceledContextStillRecords(t *testing.T) {
	obs, _, reader := newTestObserver(t)

	ctx, cancel := context.WithCancel(context.Background())
	_, span := obs.Start(ctx, SpanOptions{Component: "c", Operation: "o"})
	cancel()
	span.End(Result{Status: StatusError})

	sum := collect(t, reader)[MetricOperationTotal].Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)
}
