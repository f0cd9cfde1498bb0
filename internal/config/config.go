// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

// Package config loads the gateway's own bootstrap knobs: which
// configuration/schema/shutdown sources to wire, the default listen
// address, reload debounce, and registry poll interval. It is deliberately
// separate from the opaque, already-validated Configuration value carried
// by lifecycle.Event; that value belongs to the router-factory
// collaborator and is never parsed by this package.
package config

import (
	"fmt"
	"time"
)

// ServerConfig controls the default listen address used when a Static
// configuration source isn't supplied with one already.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// LifecycleConfig controls the core's own operational knobs.
type LifecycleConfig struct {
	// ShutdownDrain bounds how long graceful stop waits for in-flight
	// requests before the HTTP server factory's Shutdown is considered
	// failed.
	ShutdownDrain time.Duration `koanf:"shutdown_drain"`

	// WatchDebounce is the default coalescing window applied to a
	// WatchedFile source when the caller supplies no debounce.
	WatchDebounce time.Duration `koanf:"watch_debounce"`
}

// RegistryConfig controls the optional remote registry schema source.
type RegistryConfig struct {
	Enabled      bool          `koanf:"enabled"`
	Endpoint     string        `koanf:"endpoint"`
	GraphRef     string        `koanf:"graph_ref"`
	ApolloKey    string        `koanf:"apollo_key"`
	PollInterval time.Duration `koanf:"poll_interval"`
}

// LoggingConfig controls the ambient zerolog-based logging layer.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Config is the gateway's own bootstrap configuration, loaded once at
// startup by LoadWithKoanf.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Lifecycle LifecycleConfig `koanf:"lifecycle"`
	Registry  RegistryConfig  `koanf:"registry"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// Validate rejects configurations that cannot possibly produce a working
// gateway. It intentionally does not validate the opaque Configuration
// blob handed to the lifecycle core, which is the external validator
// collaborator's job.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if c.Lifecycle.ShutdownDrain <= 0 {
		return fmt.Errorf("config: lifecycle.shutdown_drain must be positive")
	}
	if c.Lifecycle.WatchDebounce < 0 {
		return fmt.Errorf("config: lifecycle.watch_debounce must not be negative")
	}
	if c.Registry.Enabled {
		if c.Registry.GraphRef == "" {
			return fmt.Errorf("config: registry.graph_ref required when registry.enabled")
		}
		if c.Registry.PollInterval <= 0 {
			return fmt.Errorf("config: registry.poll_interval must be positive when registry.enabled")
		}
	}
	return nil
}
