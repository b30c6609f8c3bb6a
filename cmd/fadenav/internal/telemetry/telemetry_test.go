package telemetry

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/go-drift/fadenav/pkg/logging"
	"github.com/go-drift/fadenav/pkg/navigation"
)

func TestMetricsHandlerExposesRouterCounters(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)

	m.Observer.DidRequest(navigation.RouteEvent{Router: "r", From: "home", To: "about", Generation: 2})
	m.Observer.DidNavigate(navigation.RouteEvent{Router: "r", From: "home", To: "about", Generation: 2})

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `fadenav_navigations_total{route="about"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestTracingDisabledIsNoop(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	tp, shutdown, err := InitTracing(context.Background(), TracingConfig{}, nil)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	_, span := tp.Tracer("test").Start(context.Background(), "x")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}

func TestTracingWritesSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var out bytes.Buffer
	tp, shutdown, err := InitTracing(context.Background(), TracingConfig{
		Enabled:     true,
		ServiceName: "kiosk",
		Output:      &out,
	}, logging.Noop())
	require.NoError(t, err)

	observer := navigation.NewTracingObserver(tp)
	observer.DidRequest(navigation.RouteEvent{Router: "r", From: "home", To: "about", Generation: 2})
	observer.DidNavigate(navigation.RouteEvent{Router: "r", From: "home", To: "about", Generation: 2})
	ShutdownWithTimeout(context.Background(), "tracing", shutdown, nil)

	assert.Contains(t, out.String(), `"Name": "navigate about"`)
	assert.Contains(t, out.String(), "kiosk")
}

func TestTracingRequiresOutput(t *testing.T) {
	_, _, err := InitTracing(context.Background(), TracingConfig{Enabled: true}, nil)
	require.Error(t, err)
}
