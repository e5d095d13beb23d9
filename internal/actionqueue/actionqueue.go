// Package actionqueue implements the per-elevator deferred work list consumed
// by the engine's tick loop: an ordered sequence of queued actions that
// yields a synthesized run-cycle action whenever it runs dry, rather than
// signaling emptiness as an error.
package actionqueue

import "github.com/slavakukuyev/elevator-go/internal/domain"

// Queue is an ordered sequence of pending domain.Action entries.
type Queue struct {
	entries []domain.Action
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Add appends one action to the back of the queue.
func (q *Queue) Add(a domain.Action) {
	q.entries = append(q.entries, a)
}

// Tick appends n ADD_TICK actions.
func (q *Queue) Tick(n int) {
	for i := 0; i < n; i++ {
		q.Add(domain.NewAction(domain.ActionAddTick))
	}
}

// OpenDoor appends the three ADD_TICKs modeling a door-open delay.
func (q *Queue) OpenDoor() {
	q.Tick(3)
}

// CloseDoor appends the three ADD_TICKs modeling a door-close delay.
func (q *Queue) CloseDoor() {
	q.Tick(3)
}

// Get pops and returns the next action. When the queue is empty it returns a
// synthesized RUN_CYCLE without mutating the (already empty) queue.
func (q *Queue) Get() domain.Action {
	if len(q.entries) == 0 {
		return domain.NewAction(domain.ActionRunCycle)
	}
	next := q.entries[0]
	q.entries = q.entries[1:]
	return next
}

// Len reports how many entries remain queued (excludes synthesized RUN_CYCLEs).
func (q *Queue) Len() int {
	return len(q.entries)
}

// Copy returns a deep copy, used when snapshotting an elevator.
func (q *Queue) Copy() *Queue {
	cp := &Queue{entries: make([]domain.Action, len(q.entries))}
	copy(cp.entries, q.entries)
	return cp
}
