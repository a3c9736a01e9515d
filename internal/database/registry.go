package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rickgao/trade-aggregator/internal/config"
)

// NamedStatement is a query prepared on the registry's connection.
type NamedStatement struct {
	Name        string
	SQL         string
	Description *pgconn.StatementDescription
}

// PoolStats is a snapshot of the connection pool.
type PoolStats struct {
	AcquireCount         int64
	EmptyAcquireCount    int64 // Acquires that had to wait for the connection
	CanceledAcquireCount int64
	AcquireDuration      time.Duration
	AcquiredConns        int32
	IdleConns            int32
	TotalConns           int32
	MaxConns             int32
	NewConnsCount        int64
}

// Registry owns one database connection and the statements prepared on it.
type Registry struct {
	pool   *pgxpool.Pool
	logger *slog.Logger

	mu           sync.RWMutex
	statements   map[string]NamedStatement
	order        []string
	bootstrapped bool
}

// Connect opens the registry's single connection and pings it.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	poolCfg, err := pgxpool.ParseConfig(ConnString(cfg))
	if err != nil {
		return nil, &ConnectionError{Err: fmt.Errorf("parse connection string: %w", err)}
	}

	poolCfg.MinConns = 1
	poolCfg.MaxConns = 1
	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.HealthCheckPeriod > 0 {
		poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod
	}

	r := &Registry{
		logger:     logger.With("component", "database"),
		statements: make(map[string]NamedStatement),
	}
	poolCfg.AfterConnect = r.afterConnect

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, &ConnectionError{Err: fmt.Errorf("create pool: %w", err)}
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &ConnectionError{Err: fmt.Errorf("ping database: %w", err)}
	}

	r.pool = pool
	return r, nil
}

// afterConnect prepares every registered statement on a new connection.
// It is a no-op before Bootstrap.
func (r *Registry) afterConnect(ctx context.Context, conn *pgx.Conn) error {
	r.mu.RLock()
	stmts := make([]NamedStatement, 0, len(r.order))
	for _, name := range r.order {
		stmts = append(stmts, r.statements[name])
	}
	r.mu.RUnlock()

	if len(stmts) == 0 {
		return nil
	}

	for _, s := range stmts {
		if _, err := conn.Prepare(ctx, s.Name, s.SQL); err != nil {
			r.logger.Error("failed to prepare statement on new connection", "statement", s.Name, "error", err)
			return fmt.Errorf("prepare %s: %w", s.Name, err)
		}
	}
	r.logger.Info("statements prepared on new connection", "count", len(stmts))
	return nil
}

// Bootstrap executes the schema scripts in order, then prepares each query
// under its name. It stops at the first failure with a *BootstrapError;
// statements prepared before the failure are deallocated and none are
// registered. A registry is bootstrapped once; later calls return
// ErrBootstrapped and leave the registered statements untouched.
func (r *Registry) Bootstrap(ctx context.Context, catalog Catalog) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return &ConnectionError{Err: fmt.Errorf("acquire connection: %w", err)}
	}
	defer conn.Release()

	// Holding the only connection serializes concurrent callers.
	r.mu.RLock()
	done := r.bootstrapped
	r.mu.RUnlock()
	if done {
		return ErrBootstrapped
	}

	for _, s := range catalog.Schema {
		// Simple protocol: schema scripts may hold several statements.
		if _, err := conn.Conn().PgConn().Exec(ctx, s.SQL).ReadAll(); err != nil {
			return &BootstrapError{Kind: KindSchema, Script: s.Name, Err: err}
		}
		r.logger.Debug("schema script applied", "script", s.Name)
	}

	prepared := make(map[string]NamedStatement, len(catalog.Queries))
	order := make([]string, 0, len(catalog.Queries))
	for _, q := range catalog.Queries {
		if _, dup := prepared[q.Name]; dup {
			r.deallocate(ctx, conn.Conn(), order)
			return &BootstrapError{Kind: KindQuery, Script: q.Name, Err: errors.New("duplicate statement name")}
		}

		sd, err := conn.Conn().Prepare(ctx, q.Name, q.SQL)
		if err != nil {
			r.deallocate(ctx, conn.Conn(), order)
			return &BootstrapError{Kind: KindQuery, Script: q.Name, Err: err}
		}
		prepared[q.Name] = NamedStatement{Name: q.Name, SQL: q.SQL, Description: sd}
		order = append(order, q.Name)
	}

	r.mu.Lock()
	r.statements = prepared
	r.order = order
	r.bootstrapped = true
	r.mu.Unlock()

	r.logger.Info("database bootstrapped",
		"schema_scripts", len(catalog.Schema),
		"statements", len(order),
	)
	return nil
}

func (r *Registry) deallocate(ctx context.Context, conn *pgx.Conn, names []string) {
	for _, name := range names {
		if err := conn.Deallocate(ctx, name); err != nil {
			r.logger.Warn("failed to deallocate statement", "statement", name, "error", err)
		}
	}
}

// lookup panics on an unknown name: handlers only use names from the catalog.
func (r *Registry) lookup(name string) {
	if _, ok := r.Statement(name); !ok {
		panic(fmt.Sprintf("database: statement %q is not registered", name))
	}
}

// Exec runs a registered statement with positional arguments.
func (r *Registry) Exec(ctx context.Context, name string, args ...any) error {
	r.lookup(name)
	if _, err := r.pool.Exec(ctx, name, args...); err != nil {
		return &QueryError{Statement: name, Err: err}
	}
	return nil
}

// Query runs a registered row-returning statement. The caller must close
// the rows.
func (r *Registry) Query(ctx context.Context, name string, args ...any) (pgx.Rows, error) {
	r.lookup(name)
	rows, err := r.pool.Query(ctx, name, args...)
	if err != nil {
		return nil, &QueryError{Statement: name, Err: err}
	}
	return rows, nil
}

// Statement returns a registered statement.
func (r *Registry) Statement(name string) (NamedStatement, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.statements[name]
	return s, ok
}

// Names returns the registered statement names in bootstrap order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Ping verifies the connection is healthy.
func (r *Registry) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Stats returns a snapshot of the pool.
func (r *Registry) Stats() PoolStats {
	s := r.pool.Stat()
	return PoolStats{
		AcquireCount:         s.AcquireCount(),
		EmptyAcquireCount:    s.EmptyAcquireCount(),
		CanceledAcquireCount: s.CanceledAcquireCount(),
		AcquireDuration:      s.AcquireDuration(),
		AcquiredConns:        s.AcquiredConns(),
		IdleConns:            s.IdleConns(),
		TotalConns:           s.TotalConns(),
		MaxConns:             s.MaxConns(),
		NewConnsCount:        s.NewConnsCount(),
	}
}

// Close closes the connection.
func (r *Registry) Close() {
	r.pool.Close()
}
