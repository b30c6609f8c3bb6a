package navigation

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-drift/fadenav/pkg/animation"
)

// MetricsObserver records router events as Prometheus metrics.
type MetricsObserver struct {
	ObserverBase

	Navigations *prometheus.CounterVec
	Superseded  prometheus.Counter
	Resets      prometheus.Counter
	BackPresses prometheus.Counter
	Durations   prometheus.Histogram

	mu      sync.Mutex
	started map[requestID]time.Time
}

type requestID struct {
	router     string
	generation uint64
}

// NewMetricsObserver registers router metrics against reg, defaulting to the
// global Prometheus registry when nil. Registering twice against the same
// registry reuses the existing collectors.
func NewMetricsObserver(reg prometheus.Registerer) (*MetricsObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	navigations, err := registerCollector(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fadenav_navigations_total",
		Help: "Completed navigations, labeled by destination route.",
	}, []string{"route"}), "fadenav_navigations_total")
	if err != nil {
		return nil, err
	}
	superseded, err := registerCollector(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fadenav_superseded_total",
		Help: "Navigation requests dropped because a newer request or reset replaced them.",
	}), "fadenav_superseded_total")
	if err != nil {
		return nil, err
	}
	resets, err := registerCollector(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fadenav_resets_total",
		Help: "Times a router activated its default route after reading its declared routes.",
	}), "fadenav_resets_total")
	if err != nil {
		return nil, err
	}
	backPresses, err := registerCollector(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fadenav_back_presses_total",
		Help: "Hardware back signals handled by routers.",
	}), "fadenav_back_presses_total")
	if err != nil {
		return nil, err
	}
	durations, err := registerCollector(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fadenav_transition_duration_seconds",
		Help:    "Time from a navigation request to the new route becoming active.",
		Buckets: []float64{0.025, 0.05, 0.1, 0.15, 0.2, 0.3, 0.5, 1},
	}), "fadenav_transition_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &MetricsObserver{
		Navigations: navigations,
		Superseded:  superseded,
		Resets:      resets,
		BackPresses: backPresses,
		Durations:   durations,
		started:     make(map[requestID]time.Time),
	}, nil
}

func (o *MetricsObserver) DidReset(e RouteEvent) {
	o.Resets.Inc()
}

func (o *MetricsObserver) DidRequest(e RouteEvent) {
	o.mu.Lock()
	o.started[requestID{e.Router, e.Generation}] = animation.Now()
	o.mu.Unlock()
}

func (o *MetricsObserver) DidNavigate(e RouteEvent) {
	o.Navigations.WithLabelValues(string(e.To)).Inc()
	if start, ok := o.take(e); ok {
		o.Durations.Observe(animation.Now().Sub(start).Seconds())
	}
}

func (o *MetricsObserver) DidSupersede(e RouteEvent) {
	o.Superseded.Inc()
	o.take(e)
}

func (o *MetricsObserver) DidBackPress(e RouteEvent) {
	o.BackPresses.Inc()
}

func (o *MetricsObserver) take(e RouteEvent) (time.Time, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := requestID{e.Router, e.Generation}
	start, ok := o.started[id]
	delete(o.started, id)
	return start, ok
}

func registerCollector[C prometheus.Collector](reg prometheus.Registerer, collector C, name string) (C, error) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
			var zero C
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero C
		return zero, err
	}
	return collector, nil
}
