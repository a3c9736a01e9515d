package connection

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// maxFrameSize bounds a single combined-stream frame.
const maxFrameSize = 1 << 20

// session is one open websocket. Every frame, ping and pong pushes the read
// deadline PingTimeout ahead, so a silent peer fails the pending read.
type session struct {
	ws  *websocket.Conn
	cfg DialConfig
}

func dial(ctx context.Context, cfg DialConfig) (*session, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: cfg.HandshakeTimeout,
	}

	ws, resp, err := dialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (status %d)", cfg.URL, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial %s: %w", cfg.URL, err)
	}

	s := &session{ws: ws, cfg: cfg}
	ws.SetReadLimit(maxFrameSize)
	ws.SetPongHandler(func(string) error {
		return s.extend()
	})
	// Binance pings every few minutes and drops clients that do not answer.
	ws.SetPingHandler(func(data string) error {
		if err := s.extend(); err != nil {
			return err
		}
		err := ws.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(cfg.WriteTimeout))
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		return err
	})

	if err := s.extend(); err != nil {
		ws.Close()
		return nil, err
	}
	return s, nil
}

func (s *session) extend() error {
	return s.ws.SetReadDeadline(time.Now().Add(s.cfg.PingTimeout))
}

// read returns the next data frame. A read deadline miss is reported as
// ErrStaleConnection.
func (s *session) read() ([]byte, error) {
	_, data, err := s.ws.ReadMessage()
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("%w: silent for %s", ErrStaleConnection, s.cfg.PingTimeout)
		}
		return nil, err
	}
	if err := s.extend(); err != nil {
		return nil, err
	}
	return data, nil
}

// keepalive pings the server until ctx is done or a ping cannot be written.
func (s *session) keepalive(ctx context.Context) {
	interval := s.cfg.PingInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deadline := time.Now().Add(s.cfg.WriteTimeout)
			if err := s.ws.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

// close sends a close frame and closes the socket, unblocking read.
func (s *session) close() {
	s.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	s.ws.Close()
}
