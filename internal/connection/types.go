package connection

import (
	"errors"
	"time"

	"github.com/rickgao/trade-aggregator/internal/config"
)

// ErrStaleConnection is reported when nothing, not even a pong, arrives
// within the ping timeout.
var ErrStaleConnection = errors.New("connection stale")

// RawMessage is a frame handed from a Stream to the router.
type RawMessage struct {
	Data       []byte    // Combined-stream frame as received
	ConnID     int       // Stream that received the frame
	ReceivedAt time.Time // Local time the read returned
}

// DialConfig configures one websocket session.
type DialConfig struct {
	URL              string        // Combined stream URL
	PingInterval     time.Duration // How often the client pings the server
	PingTimeout      time.Duration // Max silence before the session is stale
	WriteTimeout     time.Duration // Deadline for control frames
	HandshakeTimeout time.Duration
}

// DefaultDialConfig returns sensible defaults.
func DefaultDialConfig() DialConfig {
	return DialConfig{
		PingInterval:     30 * time.Second,
		PingTimeout:      config.DefaultPingTimeout,
		WriteTimeout:     config.DefaultWriteTimeout,
		HandshakeTimeout: 10 * time.Second,
	}
}

// StreamConfig configures a reconnecting Stream.
type StreamConfig struct {
	ID                 int
	Dial               DialConfig
	ReconnectBaseDelay time.Duration
	ReconnectMaxDelay  time.Duration
}

// NewStreamConfig builds the configuration of stream id reading url. The
// ping interval is kept at no more than half the ping timeout so one lost
// pong does not end the session.
func NewStreamConfig(id int, url string, cfg config.ConnectionsConfig) StreamConfig {
	dial := DefaultDialConfig()
	dial.URL = url
	if cfg.PingTimeout > 0 {
		dial.PingTimeout = cfg.PingTimeout
	}
	if cfg.WriteTimeout > 0 {
		dial.WriteTimeout = cfg.WriteTimeout
	}
	if dial.PingInterval > dial.PingTimeout/2 {
		dial.PingInterval = dial.PingTimeout / 2
	}

	return StreamConfig{
		ID:                 id,
		Dial:               dial,
		ReconnectBaseDelay: cfg.ReconnectBaseDelay,
		ReconnectMaxDelay:  cfg.ReconnectMaxDelay,
	}
}
