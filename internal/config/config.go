package config

import "time"

// GatewayConfig is the root configuration of the ingestion gateway.
type GatewayConfig struct {
	Database DatabaseConfig `yaml:"database"`
	GRPC     ListenerConfig `yaml:"grpc"`
	Metrics  ListenerConfig `yaml:"metrics"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds the single PostgreSQL connection used by the gateway.
// URL takes precedence; otherwise the connection string is built from the
// discrete fields.
type DatabaseConfig struct {
	URL               string        `yaml:"url"`
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	Name              string        `yaml:"name"`
	User              string        `yaml:"user"`
	Password          string        `yaml:"password"`
	SSLMode           string        `yaml:"ssl_mode"`
	ConnectTimeout    time.Duration `yaml:"connect_timeout"`
	HealthCheckPeriod time.Duration `yaml:"health_check_period"`
}

// ListenerConfig holds a TCP bind address (host:port).
type ListenerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// FeederConfig is the root configuration of an exchange feeder.
type FeederConfig struct {
	Exchange    string            `yaml:"exchange"`
	Binance     BinanceConfig     `yaml:"binance"`
	Connections ConnectionsConfig `yaml:"connections"`
	Gateway     GatewayClient     `yaml:"gateway"`
	Metrics     ListenerConfig    `yaml:"metrics"`
	Log         LogConfig         `yaml:"log"`
}

// BinanceConfig holds Binance REST and stream settings.
type BinanceConfig struct {
	RestURL              string        `yaml:"rest_url"`
	WSURL                string        `yaml:"ws_url"`
	Timeout              time.Duration `yaml:"timeout"`
	MaxRetries           int           `yaml:"max_retries"`
	StreamsPerConnection int           `yaml:"streams_per_connection"`
	ConnectInterval      time.Duration `yaml:"connect_interval"` // Pause between opening connections
	Symbols              []string      `yaml:"symbols"`          // Optional allow-list; empty = all trading symbols
}

// ConnectionsConfig holds websocket connection settings.
type ConnectionsConfig struct {
	ReconnectBaseDelay time.Duration `yaml:"reconnect_base_delay"`
	ReconnectMaxDelay  time.Duration `yaml:"reconnect_max_delay"`
	PingTimeout        time.Duration `yaml:"ping_timeout"`
	WriteTimeout       time.Duration `yaml:"write_timeout"`
	BufferSize         int           `yaml:"buffer_size"`
}

// GatewayClient holds the feeder's connection to the gateway.
type GatewayClient struct {
	Addr         string        `yaml:"addr"`
	PushTimeout  time.Duration `yaml:"push_timeout"`
	Workers      int           `yaml:"workers"`
	BufferSize   int           `yaml:"buffer_size"`
	SyncMarkets  bool          `yaml:"sync_markets"`  // Announce markets with SyncMarkets
	SyncInterval time.Duration `yaml:"sync_interval"` // How often markets are re-announced
}
