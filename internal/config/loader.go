package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LookupEnv reads an environment variable. os.LookupEnv satisfies it.
type LookupEnv func(key string) (string, bool)

// Environment variables recognized by the gateway.
const (
	EnvDatabaseURL         = "DATABASE_URL"
	EnvGRPCListenerAddr    = "GRPC_LISTENER_ADDR"
	EnvGRPCAddr            = "GRPC_ADDR" // Older name, used when GRPC_LISTENER_ADDR is unset
	EnvMetricsListenerAddr = "METRICS_LISTENER_ADDR"
	EnvLogLevel            = "LOG_LEVEL"
	EnvLogFormat           = "LOG_FORMAT"
	EnvGatewayAddr         = "GATEWAY_ADDR" // Feeder: gateway address
)

// LoadDotEnv loads variables from the given .env files (default ".env").
// Missing files are ignored and variables already set are never overridden.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// readYAML reads a YAML file into out, expanding ${VAR} references first.
func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), out); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}

// LoadGateway builds the gateway configuration. The YAML file is optional
// (empty path); environment variables override file values. Defaults are
// applied and the result is validated.
func LoadGateway(path string, lookup LookupEnv) (*GatewayConfig, error) {
	var cfg GatewayConfig
	if path != "" {
		if err := readYAML(path, &cfg); err != nil {
			return nil, err
		}
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	cfg.applyEnv(lookup)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *GatewayConfig) applyEnv(lookup LookupEnv) {
	if v, ok := lookup(EnvDatabaseURL); ok && v != "" {
		c.Database.URL = v
	}
	if v, ok := lookup(EnvGRPCListenerAddr); ok && v != "" {
		c.GRPC.Addr = v
	} else if v, ok := lookup(EnvGRPCAddr); ok && v != "" {
		c.GRPC.Addr = v
	}
	if v, ok := lookup(EnvMetricsListenerAddr); ok && v != "" {
		c.Metrics.Addr = v
	}
	applyLogEnv(&c.Log, lookup)
}

// LoadFeeder builds a feeder configuration from an optional YAML file and
// the environment.
func LoadFeeder(path string, lookup LookupEnv) (*FeederConfig, error) {
	var cfg FeederConfig
	if path != "" {
		if err := readYAML(path, &cfg); err != nil {
			return nil, err
		}
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvGatewayAddr); ok && v != "" {
		cfg.Gateway.Addr = v
	}
	if v, ok := lookup(EnvMetricsListenerAddr); ok && v != "" {
		cfg.Metrics.Addr = v
	}
	applyLogEnv(&cfg.Log, lookup)

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func applyLogEnv(c *LogConfig, lookup LookupEnv) {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Format = v
	}
}
