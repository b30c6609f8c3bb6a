package navigation

// InFlight returns how many requests are waiting to land or be dropped.
func (o *MetricsObserver) InFlight() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.started)
}

// OpenSpans returns how many request spans have not ended.
func (o *TracingObserver) OpenSpans() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.spans)
}
