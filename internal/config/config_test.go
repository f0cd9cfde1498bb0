// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

func TestValidateRequiresGraphRefWhenRegistryEnabled(t *testing.T) {
	cfg := defaultConfig()
	cfg.Registry.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing graph_ref")
	}
	cfg.Registry.GraphRef = "mygraph@prod"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got: %v", err)
	}
}

func TestLoadWithKoanfAppliesFileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gateway.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 4000\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf failed: %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("expected port 4000 from file, got %d", cfg.Server.Port)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gateway.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 4000\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("GATEWAY_SERVER_PORT", "5000")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf failed: %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("expected env override port 5000, got %d", cfg.Server.Port)
	}
}

func TestWatchConfigFileInvokesCallbackOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gateway.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 1\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	done := make(chan struct{}, 1)
	if err := WatchConfigFile(path, func() {
		select {
		case done <- struct{}{}:
		default:
		}
	}); err != nil {
		t.Fatalf("WatchConfigFile: %v", err)
	}

	if err := os.WriteFile(path, []byte("server:\n  port: 2\n"), 0o600); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch callback was not invoked")
	}
}
