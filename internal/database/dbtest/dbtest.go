// Package dbtest provides a PostgreSQL server for integration tests.
//
// Tests call URL, which returns TEST_DATABASE_URL when set, starts one
// embedded server per test binary when TEST_EMBEDDED_POSTGRES=1, and skips
// the test otherwise. Packages that use it stop the server from TestMain:
//
//	func TestMain(m *testing.M) { os.Exit(dbtest.Main(m)) }
package dbtest

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5"
)

const (
	user     = "gateway"
	password = "gateway"
	database = "aggregator"
)

var (
	once       sync.Once
	server     *embeddedpostgres.EmbeddedPostgres
	runtimeDir string
	startURL   string
	startErr   error
)

// URL returns a connection string for a test database, or skips t.
func URL(t testing.TB) string {
	t.Helper()

	if u := os.Getenv("TEST_DATABASE_URL"); u != "" {
		return u
	}
	if os.Getenv("TEST_EMBEDDED_POSTGRES") != "1" {
		t.Skip("set TEST_EMBEDDED_POSTGRES=1 or TEST_DATABASE_URL to run database tests")
	}

	once.Do(start)
	if startErr != nil {
		t.Fatalf("start embedded postgres: %v", startErr)
	}
	return startURL
}

func start() {
	port, err := freePort()
	if err != nil {
		startErr = err
		return
	}

	runtimeDir, err = os.MkdirTemp("", "trade-aggregator-pg-")
	if err != nil {
		startErr = err
		return
	}

	cfg := embeddedpostgres.DefaultConfig().
		Username(user).
		Password(password).
		Database(database).
		Port(uint32(port)).
		RuntimePath(runtimeDir).
		StartTimeout(60 * time.Second).
		Logger(io.Discard)

	server = embeddedpostgres.NewDatabase(cfg)
	if err := server.Start(); err != nil {
		server = nil
		startErr = err
		return
	}
	startURL = fmt.Sprintf("postgres://%s:%s@localhost:%d/%s?sslmode=disable", user, password, port, database)
}

// freePort asks the kernel for an unused port so parallel test binaries do
// not collide.
func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("find free port: %w", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// Main runs the tests and stops the embedded server, if one was started.
func Main(m *testing.M) int {
	code := m.Run()
	if server != nil {
		if err := server.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "stop embedded postgres: %v\n", err)
		}
	}
	if runtimeDir != "" {
		os.RemoveAll(runtimeDir)
	}
	return code
}

// Reset drops the gateway tables so each test bootstraps from scratch.
func Reset(t testing.TB, url string) {
	t.Helper()
	Exec(t, url, "DROP TABLE IF EXISTS trades, exchanges")
}

// Exec runs sql on a connection of its own.
func Exec(t testing.TB, url, sql string, args ...any) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, sql, args...); err != nil {
		t.Fatalf("exec %q: %v", sql, err)
	}
}

// QueryRow scans one row from sql on a connection of its own.
func QueryRow(t testing.TB, url, sql string, args []any, dest ...any) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer conn.Close(ctx)

	if err := conn.QueryRow(ctx, sql, args...).Scan(dest...); err != nil {
		t.Fatalf("query %q: %v", sql, err)
	}
}
