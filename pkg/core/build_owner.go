package core

import (
	"slices"
	"sync"
)

// BuildOwner queues elements marked dirty between frames and rebuilds them,
// parents before children, when the host flushes.
type BuildOwner struct {
	mu     sync.Mutex
	queue  []Element
	queued map[Element]struct{}

	// OnNeedsFrame runs whenever an element is newly queued. Hosts that
	// render on demand use it to request a frame.
	OnNeedsFrame func()
}

// NewBuildOwner returns an owner with nothing queued.
func NewBuildOwner() *BuildOwner {
	return &BuildOwner{queued: make(map[Element]struct{})}
}

// ScheduleBuild queues element for the next flush. Queuing an element twice
// is a no-op.
func (b *BuildOwner) ScheduleBuild(element Element) {
	if notify := b.enqueue(element); notify != nil {
		notify()
	}
}

func (b *BuildOwner) enqueue(element Element) (notify func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.queued == nil {
		b.queued = make(map[Element]struct{})
	}
	if _, ok := b.queued[element]; ok {
		return nil
	}
	b.queued[element] = struct{}{}
	b.queue = append(b.queue, element)
	return b.OnNeedsFrame
}

// NeedsWork reports whether anything is queued.
func (b *BuildOwner) NeedsWork() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue) > 0
}

// take empties the queue and returns its elements ordered shallowest first.
func (b *BuildOwner) take() []Element {
	b.mu.Lock()
	batch := b.queue
	b.queue = nil
	clear(b.queued)
	b.mu.Unlock()

	slices.SortStableFunc(batch, func(x, y Element) int { return x.Depth() - y.Depth() })
	return batch
}

// FlushBuild rebuilds queued elements until a pass queues nothing new.
// Elements unmounted while waiting are skipped.
func (b *BuildOwner) FlushBuild() {
	for batch := b.take(); len(batch) > 0; batch = b.take() {
		for _, element := range batch {
			if m, ok := element.(interface{ isMounted() bool }); ok && !m.isMounted() {
				continue
			}
			element.RebuildIfNeeded()
		}
	}
}
