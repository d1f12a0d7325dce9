package session

import (
	"sync"

	"github.com/nightjar-irc/nightjar/irc"
)

// replyQueue is the single-consumer, multi-producer handoff between
// callbacks (producers) and the writer (the sole consumer). It is
// guarded by one mutex and one condition variable, as called for by
// the library's concurrency model, rather than a channel.
//
// Drain order is FIFO. The reference this library's behavior is
// otherwise modeled on drains from the tail (LIFO), which its own
// design notes call out as probably an accident of a stack-shaped
// implementation; this queue deliberately preserves submission order
// instead.
type replyQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	entries []irc.Message
	closed  bool
}

func newReplyQueue() *replyQueue {
	q := &replyQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends msg and wakes the writer. msg must already be owned by
// the caller (not borrowing from a line buffer the reader will reuse);
// see runCallback in loop.go for why inbound messages already are.
func (q *replyQueue) push(msg irc.Message) {
	q.mu.Lock()
	q.entries = append(q.entries, msg)
	q.mu.Unlock()
	q.cond.Signal()
}

// pop blocks until an entry is available or the queue is closed. ok is
// false only when the queue was closed with nothing left to drain.
func (q *replyQueue) pop() (msg irc.Message, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.entries) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.entries) == 0 {
		return nil, false
	}

	msg = q.entries[0]
	q.entries = q.entries[1:]
	return msg, true
}

// close wakes the writer permanently; subsequent pop calls drain
// whatever remains, then return ok=false.
func (q *replyQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}
