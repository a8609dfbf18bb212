package sim

import (
	"container/heap"
	"sync"
)

// compactionFloor is the minimum number of tombstones that must accumulate
// before the queue considers rebuilding itself. Below this count the memory
// held by cancelled entries is not worth a rebuild.
const compactionFloor = 1024

// An eventQueue orders pending events by (fireTime, seq). Cancelled events
// are kept as tombstones and skipped when they surface, so cancellation
// stays O(1). When tombstones outnumber live entries the queue compacts.
type eventQueue struct {
	sync.Mutex

	events     eventHeap
	tombstones int
}

func newEventQueue() *eventQueue {
	q := new(eventQueue)
	q.events = make(eventHeap, 0)
	heap.Init(&q.events)
	return q
}

// Push adds a pending event to the queue.
func (q *eventQueue) Push(evt *event) {
	q.Lock()
	heap.Push(&q.events, evt)
	q.Unlock()
}

// Pop removes and returns the pending event with the smallest
// (fireTime, seq), discarding any cancelled entries that surface first.
// It returns nil when no pending event remains.
func (q *eventQueue) Pop() *event {
	q.Lock()
	defer q.Unlock()

	for q.events.Len() > 0 {
		evt := heap.Pop(&q.events).(*event)
		if evt.state == stateCancelled {
			q.tombstones--
			continue
		}

		return evt
	}

	return nil
}

// Len returns the number of live (non-cancelled) events in the queue.
func (q *eventQueue) Len() int {
	q.Lock()
	l := q.events.Len() - q.tombstones
	q.Unlock()
	return l
}

// NoteCancelled records that an event inside the queue turned into a
// tombstone, and compacts the heap once tombstones dominate it.
func (q *eventQueue) NoteCancelled() {
	q.Lock()
	defer q.Unlock()

	q.tombstones++

	if q.tombstones < compactionFloor || q.tombstones*2 < q.events.Len() {
		return
	}

	live := make(eventHeap, 0, q.events.Len()-q.tombstones)
	for _, evt := range q.events {
		if evt.state != stateCancelled {
			live = append(live, evt)
		}
	}

	q.events = live
	q.tombstones = 0
	heap.Init(&q.events)
}

// Drain removes every event from the queue, marking the pending ones
// cancelled, and returns the number of events dropped.
func (q *eventQueue) Drain() int {
	q.Lock()
	defer q.Unlock()

	dropped := 0
	for _, evt := range q.events {
		if evt.state == statePending {
			evt.state = stateCancelled
			dropped++
		}
	}

	q.events = make(eventHeap, 0)
	q.tombstones = 0
	heap.Init(&q.events)

	return dropped
}

type eventHeap []*event

func (h eventHeap) Len() int {
	return len(h)
}

// Less orders events by fire time, breaking ties by scheduling order.
func (h eventHeap) Less(i, j int) bool {
	if h[i].fireTime != h[j].fireTime {
		return h[i].fireTime < h[j].fireTime
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*event))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	evt := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return evt
}
