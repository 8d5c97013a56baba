package spawn

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Request asks for one entity of Kind at Origin, launched along Direction.
type Request struct {
	Kind      string
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// Queue buffers spawn requests raised during a tick. Any system or action
// handler may Push; only the SpawnSystem drains, once per tick.
type Queue struct {
	mu      sync.Mutex
	pending []Request
}

func NewQueue() *Queue {
	return &Queue{pending: make([]Request, 0, 16)}
}

// Push enqueues a request.
func (q *Queue) Push(r Request) {
	q.mu.Lock()
	q.pending = append(q.pending, r)
	q.mu.Unlock()
}

// Drain removes and returns all pending requests in push order.
func (q *Queue) Drain() []Request {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = make([]Request, 0, cap(out))
	return out
}

// Len returns the number of pending requests.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
