package engine

import (
	"container/heap"
	"sync"
	"time"
)

// Handle identifies a scheduled frame callback or timer, zero is never issued
type Handle uint64

// FrameFunc receives the timestamp of the frame being dispatched
type FrameFunc func(now time.Time)

// Scheduler is the cooperative event loop every animation component runs on
// Callbacks never run concurrently with each other; within one loop turn the order is
// posted tasks, due timers, then frame callbacks in registration order
type Scheduler interface {
	// Now returns the loop clock reading
	Now() time.Time

	// RequestFrame schedules fn for the next frame; requests made during a frame run on the following one
	RequestFrame(fn FrameFunc) Handle

	// CancelFrame drops a pending frame callback, unknown or spent handles are ignored
	CancelFrame(h Handle)

	// AfterFunc schedules fn once after d
	AfterFunc(d time.Duration, fn func()) Handle

	// CancelTimer drops a pending timer, unknown or spent handles are ignored
	CancelTimer(h Handle)

	// Post queues fn as a task for the next loop turn; safe from any goroutine
	Post(fn func())
}

type frameEntry struct {
	id Handle
	fn FrameFunc
}

type timerEntry struct {
	id    Handle
	due   time.Time
	seq   uint64
	fn    func()
	index int
}

// timerHeap orders timers by deadline, ties broken by scheduling order
type timerHeap []*timerEntry

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x any) {
	t := x.(*timerEntry)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// queue holds pending work shared by Loop and VirtualLoop
// Bookkeeping is locked, callbacks run unlocked so they may schedule more work
type queue struct {
	mu sync.Mutex

	nextID Handle
	seq    uint64

	frames  []frameEntry // requested for the next frame
	current []frameEntry // batch being dispatched
	timers  timerHeap
	byID    map[Handle]*timerEntry
	tasks   []func()

	onPanic func(r any)
}

func (q *queue) init(onPanic func(r any)) {
	q.byID = make(map[Handle]*timerEntry)
	q.onPanic = onPanic
}

func (q *queue) requestFrame(fn FrameFunc) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	q.frames = append(q.frames, frameEntry{id: q.nextID, fn: fn})
	return q.nextID
}

func (q *queue) cancelFrame(h Handle) {
	if h == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.frames {
		if q.frames[i].id == h {
			q.frames[i].fn = nil
			return
		}
	}
	for i := range q.current {
		if q.current[i].id == h {
			q.current[i].fn = nil
			return
		}
	}
}

func (q *queue) afterFunc(now time.Time, d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	q.seq++
	t := &timerEntry{id: q.nextID, due: now.Add(d), seq: q.seq, fn: fn}
	heap.Push(&q.timers, t)
	q.byID[t.id] = t
	return t.id
}

func (q *queue) cancelTimer(h Handle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	t, ok := q.byID[h]
	if !ok {
		return
	}
	delete(q.byID, h)
	heap.Remove(&q.timers, t.index)
}

func (q *queue) post(fn func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()
}

// nextDue reports the earliest timer deadline
func (q *queue) nextDue() (time.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.timers) == 0 {
		return time.Time{}, false
	}
	return q.timers[0].due, true
}

// runTasks drains tasks posted before the call, later posts wait for the next turn
func (q *queue) runTasks() {
	q.mu.Lock()
	batch := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, fn := range batch {
		q.call(fn)
	}
}

// runTimers fires timers due at now that existed when the pass began
func (q *queue) runTimers(now time.Time) {
	q.mu.Lock()
	limit := q.seq
	q.mu.Unlock()

	for {
		q.mu.Lock()
		if len(q.timers) == 0 {
			q.mu.Unlock()
			return
		}
		top := q.timers[0]
		if top.due.After(now) || top.seq > limit {
			q.mu.Unlock()
			return
		}
		heap.Pop(&q.timers)
		delete(q.byID, top.id)
		q.mu.Unlock()

		q.call(top.fn)
	}
}

// runFrame dispatches the pending frame batch in registration order
func (q *queue) runFrame(now time.Time) {
	q.mu.Lock()
	q.current = q.frames
	q.frames = nil
	q.mu.Unlock()

	for i := 0; ; i++ {
		q.mu.Lock()
		if i >= len(q.current) {
			q.current = nil
			q.mu.Unlock()
			return
		}
		fn := q.current[i].fn
		q.mu.Unlock()

		if fn != nil {
			q.call(func() { fn(now) })
		}
	}
}

// pending counts live frame callbacks, timers and tasks
func (q *queue) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.timers) + len(q.tasks)
	for _, f := range q.frames {
		if f.fn != nil {
			n++
		}
	}
	return n
}

// call isolates a callback panic so one broken callback does not stop the loop
func (q *queue) call(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if q.onPanic != nil {
				q.onPanic(r)
			}
		}
	}()
	fn()
}
