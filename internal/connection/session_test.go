package connection

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

const (
	btcFrame = `{"stream":"btcusdt@aggTrade","data":{"e":"aggTrade","E":1672515782136,"s":"BTCUSDT",` +
		`"a":12345,"p":"16500.10","q":"0.00120000","f":100,"l":105,"T":1672515782134,"m":true,"M":true}}`
	ethFrame = `{"stream":"ethbtc@aggTrade","data":{"e":"aggTrade","E":1672515782140,"s":"ETHBTC",` +
		`"a":777,"p":"0.07340000","q":"1.20000000","f":9,"l":9,"T":1672515782139,"m":false,"M":true}}`
)

// fakeBinance serves combined streams on /stream and runs handler for every
// upgraded connection.
func fakeBinance(t *testing.T, handler func(*websocket.Conn)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrade error: %v", err)
			return
		}
		defer conn.Close()
		handler(conn)
	}))
	t.Cleanup(server.Close)
	return server
}

func streamURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/stream?streams=btcusdt@aggTrade/ethbtc@aggTrade"
}

// drain reads until the peer goes away. Reading also answers pings.
func drain(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func testDialConfig(url string) DialConfig {
	cfg := DefaultDialConfig()
	cfg.URL = url
	cfg.WriteTimeout = time.Second
	cfg.HandshakeTimeout = time.Second
	return cfg
}

func TestDial_ReadsCombinedFrames(t *testing.T) {
	server := fakeBinance(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage, []byte(btcFrame))
		conn.WriteMessage(websocket.TextMessage, []byte(ethFrame))
		drain(conn)
	})

	sess, err := dial(context.Background(), testDialConfig(streamURL(server)))
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer sess.close()

	for _, want := range []string{btcFrame, ethFrame} {
		data, err := sess.read()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if string(data) != want {
			t.Errorf("read = %s, want %s", data, want)
		}
	}
}

func TestDial_RejectedHandshake(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":-1003,"msg":"Too many requests"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := dial(context.Background(), testDialConfig(streamURL(server)))
	if err == nil {
		t.Fatal("dial succeeded, want handshake error")
	}
	if !strings.Contains(err.Error(), "status 429") {
		t.Errorf("dial error = %v, want the response status", err)
	}
}

func TestDial_Refused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := streamURL(server)
	server.Close()

	if _, err := dial(context.Background(), testDialConfig(url)); err == nil {
		t.Error("dial to a closed server succeeded")
	}
}

func TestSession_SilentPeerIsStale(t *testing.T) {
	// The peer never reads, so the client's pings go unanswered.
	release := make(chan struct{})
	server := fakeBinance(t, func(conn *websocket.Conn) {
		<-release
	})
	defer close(release)

	cfg := testDialConfig(streamURL(server))
	cfg.PingTimeout = 100 * time.Millisecond
	cfg.PingInterval = 30 * time.Millisecond

	sess, err := dial(context.Background(), cfg)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer sess.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sess.keepalive(ctx)

	start := time.Now()
	_, err = sess.read()
	if !errors.Is(err, ErrStaleConnection) {
		t.Fatalf("read error = %v, want ErrStaleConnection", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("stale detection took %v", elapsed)
	}
}

func TestSession_PongsKeepSessionAlive(t *testing.T) {
	// The peer sends nothing but answers pings while draining.
	server := fakeBinance(t, drain)

	cfg := testDialConfig(streamURL(server))
	cfg.PingTimeout = 150 * time.Millisecond
	cfg.PingInterval = 30 * time.Millisecond

	sess, err := dial(context.Background(), cfg)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go sess.keepalive(ctx)

	readErr := make(chan error, 1)
	go func() {
		_, err := sess.read()
		readErr <- err
	}()

	select {
	case err := <-readErr:
		t.Fatalf("read ended early: %v", err)
	case <-time.After(500 * time.Millisecond):
	}

	cancel()
	sess.close()
	if err := <-readErr; errors.Is(err, ErrStaleConnection) {
		t.Errorf("read error after close = %v, want a closed-connection error", err)
	}
}

func TestSession_AnswersServerPing(t *testing.T) {
	var pongs atomic.Int32
	gotPong := make(chan struct{})
	server := fakeBinance(t, func(conn *websocket.Conn) {
		conn.SetPongHandler(func(data string) error {
			if data == "1672515782136" && pongs.Add(1) == 1 {
				close(gotPong)
			}
			return nil
		})
		conn.WriteControl(websocket.PingMessage, []byte("1672515782136"), time.Now().Add(time.Second))
		drain(conn)
	})

	sess, err := dial(context.Background(), testDialConfig(streamURL(server)))
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer sess.close()

	// Pings are handled inside read.
	go sess.read()

	select {
	case <-gotPong:
	case <-time.After(2 * time.Second):
		t.Fatal("server ping was not answered")
	}
}

func TestDefaultDialConfig(t *testing.T) {
	cfg := DefaultDialConfig()

	if cfg.PingInterval != 30*time.Second {
		t.Errorf("PingInterval = %v, want 30s", cfg.PingInterval)
	}
	if cfg.PingTimeout <= cfg.PingInterval {
		t.Errorf("PingTimeout = %v, want more than PingInterval %v", cfg.PingTimeout, cfg.PingInterval)
	}
	if cfg.HandshakeTimeout != 10*time.Second {
		t.Errorf("HandshakeTimeout = %v, want 10s", cfg.HandshakeTimeout)
	}
}
