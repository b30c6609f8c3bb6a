package navigation

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/go-drift/fadenav/pkg/navigation"

// TracingObserver opens one span per navigation request. The span ends when
// the request lands or is superseded.
type TracingObserver struct {
	ObserverBase

	tracer trace.Tracer

	mu    sync.Mutex
	spans map[requestID]trace.Span
}

// NewTracingObserver creates an observer using provider, or the global
// tracer provider when nil.
func NewTracingObserver(provider trace.TracerProvider) *TracingObserver {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &TracingObserver{
		tracer: provider.Tracer(tracerName),
		spans:  make(map[requestID]trace.Span),
	}
}

func (o *TracingObserver) DidRequest(e RouteEvent) {
	_, span := o.tracer.Start(context.Background(), "navigate "+string(e.To),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("fadenav.router", e.Router),
			attribute.String("fadenav.route.to", string(e.To)),
			attribute.Int64("fadenav.generation", int64(e.Generation)),
		),
	)
	o.mu.Lock()
	o.spans[requestID{e.Router, e.Generation}] = span
	o.mu.Unlock()
}

func (o *TracingObserver) DidNavigate(e RouteEvent) {
	span, ok := o.take(e)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("fadenav.route.from", string(e.From)))
	span.SetStatus(codes.Ok, "")
	span.End()
}

func (o *TracingObserver) DidSupersede(e RouteEvent) {
	span, ok := o.take(e)
	if !ok {
		return
	}
	span.AddEvent("superseded")
	span.SetAttributes(attribute.Bool("fadenav.superseded", true))
	span.End()
}

func (o *TracingObserver) DidBackPress(e RouteEvent) {
	_, span := o.tracer.Start(context.Background(), "back press",
		trace.WithAttributes(attribute.String("fadenav.router", e.Router)),
	)
	span.End()
}

func (o *TracingObserver) take(e RouteEvent) (trace.Span, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := requestID{e.Router, e.Generation}
	span, ok := o.spans[id]
	delete(o.spans, id)
	return span, ok
}
