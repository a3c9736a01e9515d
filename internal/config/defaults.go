package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultDBPort               = 5432
	DefaultDBSSLMode            = "prefer"
	DefaultDBConnectTimeout     = 10 * time.Second
	DefaultDBHealthCheckPeriod  = 30 * time.Second
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "text"
	DefaultExchange             = "binance"
	DefaultBinanceRestURL       = "https://api.binance.com"
	DefaultBinanceWSURL         = "wss://stream.binance.com:9443"
	DefaultAPITimeout           = 30 * time.Second
	DefaultMaxRetries           = 3
	DefaultStreamsPerConnection = 50
	DefaultConnectInterval      = 1 * time.Second
	DefaultReconnectBaseDelay   = 1 * time.Second
	DefaultReconnectMaxDelay    = 60 * time.Second
	DefaultPingTimeout          = 60 * time.Second
	DefaultWriteTimeout         = 5 * time.Second
	DefaultBufferSize           = 10000
	DefaultGatewayAddr          = "127.0.0.1:50051"
	DefaultPushTimeout          = 2 * time.Second
	DefaultForwardWorkers       = 16
	DefaultFeederMetricsAddr    = ":2112"
	DefaultSyncInterval         = 1 * time.Hour
)

func (c *GatewayConfig) applyDefaults() {
	applyDBDefaults(&c.Database)
	applyLogDefaults(&c.Log)
}

func applyDBDefaults(db *DatabaseConfig) {
	// Discrete fields only matter without a URL.
	if db.URL == "" {
		if db.Port == 0 {
			db.Port = DefaultDBPort
		}
		if db.SSLMode == "" {
			db.SSLMode = DefaultDBSSLMode
		}
	}
	if db.ConnectTimeout == 0 {
		db.ConnectTimeout = DefaultDBConnectTimeout
	}
	if db.HealthCheckPeriod == 0 {
		db.HealthCheckPeriod = DefaultDBHealthCheckPeriod
	}
}

func applyLogDefaults(l *LogConfig) {
	if l.Level == "" {
		l.Level = DefaultLogLevel
	}
	if l.Format == "" {
		l.Format = DefaultLogFormat
	}
}

func (c *FeederConfig) applyDefaults() {
	if c.Exchange == "" {
		c.Exchange = DefaultExchange
	}

	// Binance defaults
	if c.Binance.RestURL == "" {
		c.Binance.RestURL = DefaultBinanceRestURL
	}
	if c.Binance.WSURL == "" {
		c.Binance.WSURL = DefaultBinanceWSURL
	}
	if c.Binance.Timeout == 0 {
		c.Binance.Timeout = DefaultAPITimeout
	}
	if c.Binance.MaxRetries == 0 {
		c.Binance.MaxRetries = DefaultMaxRetries
	}
	if c.Binance.StreamsPerConnection == 0 {
		c.Binance.StreamsPerConnection = DefaultStreamsPerConnection
	}
	if c.Binance.ConnectInterval == 0 {
		c.Binance.ConnectInterval = DefaultConnectInterval
	}

	// Connections defaults
	if c.Connections.ReconnectBaseDelay == 0 {
		c.Connections.ReconnectBaseDelay = DefaultReconnectBaseDelay
	}
	if c.Connections.ReconnectMaxDelay == 0 {
		c.Connections.ReconnectMaxDelay = DefaultReconnectMaxDelay
	}
	if c.Connections.PingTimeout == 0 {
		c.Connections.PingTimeout = DefaultPingTimeout
	}
	if c.Connections.WriteTimeout == 0 {
		c.Connections.WriteTimeout = DefaultWriteTimeout
	}
	if c.Connections.BufferSize == 0 {
		c.Connections.BufferSize = DefaultBufferSize
	}

	// Gateway defaults
	if c.Gateway.Addr == "" {
		c.Gateway.Addr = DefaultGatewayAddr
	}
	if c.Gateway.PushTimeout == 0 {
		c.Gateway.PushTimeout = DefaultPushTimeout
	}
	if c.Gateway.Workers == 0 {
		c.Gateway.Workers = DefaultForwardWorkers
	}
	if c.Gateway.BufferSize == 0 {
		c.Gateway.BufferSize = DefaultBufferSize
	}
	if c.Gateway.SyncInterval == 0 {
		c.Gateway.SyncInterval = DefaultSyncInterval
	}

	if c.Metrics.Addr == "" {
		c.Metrics.Addr = DefaultFeederMetricsAddr
	}
	applyLogDefaults(&c.Log)
}
