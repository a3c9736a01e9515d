package connection

import (
	"context"
	"log/slog"
	"time"

	"github.com/rickgao/trade-aggregator/internal/metrics"
)

// Stream keeps one websocket session open for its lifetime, reconnecting
// with exponential backoff whenever the session fails.
type Stream struct {
	cfg     StreamConfig
	metrics *metrics.FeederMetrics
	logger  *slog.Logger
}

// NewStream creates a stream. Run starts it.
func NewStream(cfg StreamConfig, m *metrics.FeederMetrics, logger *slog.Logger) *Stream {
	if logger == nil {
		logger = slog.Default()
	}

	return &Stream{
		cfg:     cfg,
		metrics: m,
		logger:  logger.With("conn", cfg.ID),
	}
}

// Run connects and forwards frames to out until ctx is cancelled. It only
// returns once ctx is done, and then returns nil.
func (s *Stream) Run(ctx context.Context, out chan<- RawMessage) error {
	wait := s.cfg.ReconnectBaseDelay

	for {
		sess, err := dial(ctx, s.cfg.Dial)
		if err == nil {
			s.metrics.ConnectionsOpen.Inc()
			s.logger.Info("stream connected")
			wait = s.cfg.ReconnectBaseDelay

			err = s.serve(ctx, sess, out)
			s.metrics.ConnectionsOpen.Dec()
		}
		if ctx.Err() != nil {
			return nil
		}

		s.metrics.ConnectionErrs.Inc()
		s.logger.Warn("stream disconnected", "error", err, "retry_in", wait)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}

		s.metrics.Reconnects.Inc()
		s.logger.Info("attempting reconnection")
		wait = nextDelay(wait, s.cfg.ReconnectMaxDelay)
	}
}

// serve relays frames from sess until the session fails or ctx ends. The
// session is closed on return.
func (s *Stream) serve(ctx context.Context, sess *session, out chan<- RawMessage) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	context.AfterFunc(ctx, sess.close)
	go sess.keepalive(ctx)

	for {
		data, err := sess.read()
		if err != nil {
			return err
		}
		s.relay(data, time.Now(), out)
	}
}

// relay never blocks: a full out channel drops the frame so the read loop
// keeps answering pings.
func (s *Stream) relay(data []byte, receivedAt time.Time, out chan<- RawMessage) {
	s.metrics.Events.Inc()

	select {
	case out <- RawMessage{Data: data, ConnID: s.cfg.ID, ReceivedAt: receivedAt}:
	default:
		s.logger.Warn("message buffer full, dropping")
	}
}

// nextDelay doubles wait, capped at maxWait.
func nextDelay(wait, maxWait time.Duration) time.Duration {
	if wait <= 0 {
		return maxWait
	}
	wait *= 2
	if maxWait > 0 && wait > maxWait {
		wait = maxWait
	}
	return wait
}
