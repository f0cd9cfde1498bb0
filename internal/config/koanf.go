// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"gateway.yaml",
	"gateway.yml",
	"/etc/gatewaycore/gateway.yaml",
	"/etc/gatewaycore/gateway.yml",
}

// ConfigPathEnvVar overrides the bootstrap config file path. Distinct
// from GATEWAY_CONFIG_PATH, which names the watched gateway
// configuration file fed through the lifecycle's WatchedFile source.
const ConfigPathEnvVar = "GATEWAY_BOOTSTRAP_CONFIG"

// defaultConfig returns sensible defaults, applied before the config file
// and environment overrides.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 0, // OS-assigned by default; set explicitly for a stable bind.
		},
		Lifecycle: LifecycleConfig{
			ShutdownDrain: 15 * time.Second,
			WatchDebounce: 100 * time.Millisecond,
		},
		Registry: RegistryConfig{
			Enabled:      false,
			PollInterval: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads the gateway's bootstrap configuration using layered
// sources: (1) built-in defaults, (2) an optional YAML file, (3)
// environment variable overrides, in ascending priority.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("GATEWAY_", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps GATEWAY_-prefixed environment variables to koanf
// config paths, e.g. GATEWAY_SERVER_PORT -> server.port.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, "GATEWAY_"))
	return strings.ReplaceAll(key, "_", ".")
}

// WatchConfigFile subscribes to filesystem change notifications for path
// via koanf's file.Provider (backed by fsnotify) and invokes callback on
// each event. It does not debounce; the WatchedFile lifecycle source
// adapter calls file.Provider's Watch itself and adds its own timer.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
