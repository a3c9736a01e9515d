package router

import (
	"context"
	"errors"
	"sync"

	"github.com/rickgao/trade-aggregator/internal/metrics"
	"github.com/rickgao/trade-aggregator/internal/model"
)

// ErrQueueClosed is returned by Receive once the queue is closed and empty.
var ErrQueueClosed = errors.New("trade queue closed")

// compactAfter is the number of consumed slots that triggers compaction.
const compactAfter = 1024

// TradeQueue is an unbounded FIFO of routed trades. Push never blocks, so a
// slow gateway lengthens the queue instead of stalling the stream readers.
// Depth and growth are published on the feeder metrics.
type TradeQueue struct {
	metrics *metrics.FeederMetrics

	mu      sync.Mutex
	pending []model.Trade // pending[head:] is queued
	head    int
	closed  bool
	pushed  int64
	taken   int64
	resizes int64

	// ready holds one token while trades may be waiting.
	ready chan struct{}
}

// QueueStats is a snapshot of a TradeQueue.
type QueueStats struct {
	Depth    int
	Capacity int
	Pushed   int64
	Taken    int64
	Resizes  int64
}

// NewTradeQueue creates a queue with room for capacity trades before its
// first resize.
func NewTradeQueue(capacity int, m *metrics.FeederMetrics) *TradeQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &TradeQueue{
		metrics: m,
		pending: make([]model.Trade, 0, capacity),
		ready:   make(chan struct{}, 1),
	}
}

// Push appends a trade. It reports false once the queue is closed.
func (q *TradeQueue) Push(trade model.Trade) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	before := cap(q.pending)
	q.pending = append(q.pending, trade)
	if cap(q.pending) != before {
		q.resizes++
		q.metrics.QueueResizes.Inc()
	}
	q.pushed++
	q.metrics.QueueDepth.Set(float64(len(q.pending) - q.head))

	q.signal()
	return true
}

// Receive takes the oldest trade, waiting until one is queued. Trades queued
// before Close are still delivered; after that Receive returns
// ErrQueueClosed. A cancelled ctx returns ctx.Err().
func (q *TradeQueue) Receive(ctx context.Context) (model.Trade, error) {
	for {
		q.mu.Lock()
		if q.head < len(q.pending) {
			trade := q.take()
			q.mu.Unlock()
			return trade, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return model.Trade{}, ErrQueueClosed
		}

		select {
		case <-q.ready:
		case <-ctx.Done():
			return model.Trade{}, ctx.Err()
		}
	}
}

// Close stops further pushes and wakes every waiting receiver.
func (q *TradeQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.ready)
}

// Stats returns a snapshot of the queue.
func (q *TradeQueue) Stats() QueueStats {
	q.mu.Lock()
	defer q.mu.Unlock()

	return QueueStats{
		Depth:    len(q.pending) - q.head,
		Capacity: cap(q.pending),
		Pushed:   q.pushed,
		Taken:    q.taken,
		Resizes:  q.resizes,
	}
}

// take pops the head trade. Must be called with mu held and the queue
// non-empty.
func (q *TradeQueue) take() model.Trade {
	trade := q.pending[q.head]
	q.pending[q.head] = model.Trade{}
	q.head++
	q.taken++

	switch {
	case q.head == len(q.pending):
		q.pending = q.pending[:0]
		q.head = 0
	case q.head >= compactAfter && q.head*2 >= len(q.pending):
		n := copy(q.pending, q.pending[q.head:])
		clear(q.pending[n:])
		q.pending = q.pending[:n]
		q.head = 0
	}

	depth := len(q.pending) - q.head
	q.metrics.QueueDepth.Set(float64(depth))
	if depth > 0 {
		// Pass the token on to the next receiver.
		q.signal()
	}
	return trade
}

// signal leaves a wake-up token unless one is pending. Must be called with
// mu held and the queue open.
func (q *TradeQueue) signal() {
	if q.closed {
		return
	}
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
