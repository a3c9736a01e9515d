package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Validate checks that all required fields are set and values are valid.
func (c *GatewayConfig) Validate() error {
	if err := c.Database.validate("database"); err != nil {
		return err
	}
	if err := validateAddr("grpc.addr", c.GRPC.Addr); err != nil {
		return err
	}
	if err := validateAddr("metrics.addr", c.Metrics.Addr); err != nil {
		return err
	}
	if c.GRPC.Addr == c.Metrics.Addr {
		return errors.New("grpc.addr and metrics.addr must differ")
	}
	return c.Log.validate("log")
}

func (c *DatabaseConfig) validate(prefix string) error {
	if c.URL != "" {
		// Keyword/value DSNs (host=... dbname=...) are accepted as well.
		if strings.Contains(c.URL, "://") {
			u, err := url.Parse(c.URL)
			if err != nil {
				return fmt.Errorf("%s.url is invalid: %w", prefix, err)
			}
			if u.Scheme != "postgres" && u.Scheme != "postgresql" {
				return fmt.Errorf("%s.url must use the postgres scheme, got %q", prefix, u.Scheme)
			}
		}
		if _, err := pgconn.ParseConfig(c.URL); err != nil {
			return fmt.Errorf("%s.url is invalid: %w", prefix, err)
		}
		return nil
	}
	if c.Host == "" {
		return fmt.Errorf("%s.url or %s.host is required", prefix, prefix)
	}
	if c.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if c.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%s.port must be between 1 and 65535", prefix)
	}
	return nil
}

func (c *LogConfig) validate(prefix string) error {
	switch strings.ToLower(c.Level) {
	case "debug", "trace", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%s.level %q is not one of debug, info, warn, error", prefix, c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%s.format %q is not one of text, json", prefix, c.Format)
	}
	return nil
}

func validateAddr(field, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s is required", field)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%s %q is not host:port: %w", field, addr, err)
	}
	return nil
}

// Validate checks that all required fields are set and values are valid.
func (c *FeederConfig) Validate() error {
	if c.Exchange != "binance" {
		return fmt.Errorf("exchange %q is not supported", c.Exchange)
	}
	if c.Binance.StreamsPerConnection < 1 || c.Binance.StreamsPerConnection > 1024 {
		return errors.New("binance.streams_per_connection must be between 1 and 1024")
	}
	if c.Binance.MaxRetries < 0 {
		return errors.New("binance.max_retries must be >= 0")
	}
	if c.Connections.ReconnectMaxDelay < c.Connections.ReconnectBaseDelay {
		return errors.New("connections.reconnect_max_delay must be >= reconnect_base_delay")
	}
	if c.Connections.BufferSize < 1 {
		return errors.New("connections.buffer_size must be >= 1")
	}
	if err := validateAddr("gateway.addr", c.Gateway.Addr); err != nil {
		return err
	}
	if c.Gateway.Workers < 1 {
		return errors.New("gateway.workers must be >= 1")
	}
	if c.Gateway.BufferSize < 1 {
		return errors.New("gateway.buffer_size must be >= 1")
	}
	if c.Gateway.SyncMarkets && c.Gateway.SyncInterval <= 0 {
		return errors.New("gateway.sync_interval must be positive")
	}
	if err := validateAddr("metrics.addr", c.Metrics.Addr); err != nil {
		return err
	}
	return c.Log.validate("log")
}
