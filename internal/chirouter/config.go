// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package chirouter

import (
	"fmt"
	"net"
	"time"
)

// Config is the concrete lifecycle.Configuration this package's Router and
// Server consume. It stands in for the real gateway configuration schema,
// whose validation and parsing belong to an external collaborator; Config
// carries just enough to drive chi routing decisions and the listen
// address.
type Config struct {
	ListenAddr string `koanf:"listen_addr" yaml:"listen_addr"`

	CORSAllowedOrigins   []string `koanf:"cors_allowed_origins" yaml:"cors_allowed_origins"`
	CORSAllowedMethods   []string `koanf:"cors_allowed_methods" yaml:"cors_allowed_methods"`
	CORSAllowCredentials bool     `koanf:"cors_allow_credentials" yaml:"cors_allow_credentials"`

	RateLimitRequests int           `koanf:"rate_limit_requests" yaml:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" yaml:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled" yaml:"rate_limit_disabled"`
}

// ListenSpec implements lifecycle.Configuration.
func (c *Config) ListenSpec() string { return c.ListenAddr }

// DefaultConfig returns the Config applied before a YAML file's fields are
// layered on top in ValidateYAML.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:           "127.0.0.1:0",
		CORSAllowedOrigins:   []string{},
		CORSAllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		CORSAllowCredentials: false,
		RateLimitRequests:    100,
		RateLimitWindow:      time.Minute,
		RateLimitDisabled:    false,
	}
}

// Validate rejects a Config that cannot produce a working pipeline. This
// is the concrete instance of the external "validator rejected the
// configuration" path behind lifecycle.ErrConfig.
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
		return fmt.Errorf("chirouter: invalid listen_addr %q: %w", c.ListenAddr, err)
	}
	if !c.RateLimitDisabled {
		if c.RateLimitRequests <= 0 {
			return fmt.Errorf("chirouter: rate_limit_requests must be positive when rate limiting is enabled")
		}
		if c.RateLimitWindow <= 0 {
			return fmt.Errorf("chirouter: rate_limit_window must be positive when rate limiting is enabled")
		}
	}
	return nil
}
