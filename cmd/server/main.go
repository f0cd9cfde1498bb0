// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/gatewaycore/internal/chirouter"
	"github.com/tomtom215/gatewaycore/internal/config"
	"github.com/tomtom215/gatewaycore/internal/lifecycle"
	"github.com/tomtom215/gatewaycore/internal/logging"
	"github.com/tomtom215/gatewaycore/internal/metrics"
	"github.com/tomtom215/gatewaycore/internal/registry"
)

// version is stamped by the build via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

// run builds one illustrative wiring of the lifecycle core and blocks
// until it terminates, returning the process exit code.
func run() int {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gatewaycore: loading configuration: %v\n", err)
		return 1
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
	go trackUptime(ctx)

	configSource := selectConfigurationSource(ctx, cfg)
	schemaSource := selectSchemaSource(ctx, cfg)

	logger := logging.NewSlogLogger()
	router := chirouter.NewRouter(1024)
	server := chirouter.NewServerFactory(logger, cfg.Lifecycle.ShutdownDrain)

	handle := lifecycle.Serve(ctx, lifecycle.ServeConfig{
		ConfigSource:   configSource,
		SchemaSource:   schemaSource,
		ShutdownSource: lifecycle.CtrlCShutdownSource(ctx),
		Router:         router,
		Server:         server,
		ShutdownDrain:  cfg.Lifecycle.ShutdownDrain,
	})

	states, err := handle.StateReceiver()
	if err != nil {
		logging.Error().Err(err).Msg("gatewaycore: subscribing to lifecycle state")
		return 1
	}
	go logStateTransitions(states)

	if err := handle.Wait(); err != nil {
		logging.Error().Err(err).Msg("gatewaycore: terminated with error")
		return 1
	}
	logging.Info().Msg("gatewaycore: stopped")
	return 0
}

// selectConfigurationSource wires GATEWAY_CONFIG_PATH to a watched file
// when set, falling back to a static default configuration otherwise.
func selectConfigurationSource(ctx context.Context, cfg *config.Config) <-chan lifecycle.Event {
	if path := os.Getenv("GATEWAY_CONFIG_PATH"); path != "" {
		logging.Info().Str("path", path).Msg("gatewaycore: watching configuration file")
		return lifecycle.ConfigurationWatchedFile(ctx, path, true, cfg.Lifecycle.WatchDebounce, chirouter.ValidateYAML)
	}
	def := chirouter.DefaultConfig()
	def.ListenAddr = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	return lifecycle.StaticConfigurationSource(def)
}

// selectSchemaSource wires GATEWAY_SCHEMA_PATH to a watched file when
// set, falling back to polling Apollo Uplink when registry.enabled, and
// finally to a static stub schema.
func selectSchemaSource(ctx context.Context, cfg *config.Config) <-chan lifecycle.Event {
	if path := os.Getenv("GATEWAY_SCHEMA_PATH"); path != "" {
		logging.Info().Str("path", path).Msg("gatewaycore: watching schema file")
		return lifecycle.SchemaWatchedFile(ctx, path, true, cfg.Lifecycle.WatchDebounce, registry.ParseSchema)
	}
	if cfg.Registry.Enabled {
		logging.Info().Str("endpoint", cfg.Registry.Endpoint).Msg("gatewaycore: polling schema registry")
		return registry.Source(ctx, registry.Config{
			Endpoint:     cfg.Registry.Endpoint,
			GraphRef:     cfg.Registry.GraphRef,
			ApolloKey:    cfg.Registry.ApolloKey,
			PollInterval: cfg.Registry.PollInterval,
		})
	}
	stub, err := registry.ParseSchema([]byte("type Query { _service: String }"))
	if err != nil {
		// ParseSchema only rejects empty input; the literal above is never empty.
		panic(err)
	}
	return lifecycle.StaticSchemaSource(stub)
}

// trackUptime keeps the uptime gauge current until the process winds down.
func trackUptime(ctx context.Context) {
	start := time.Now()
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.AppUptime.Set(time.Since(start).Seconds())
		}
	}
}

// logStateTransitions reports every observable lifecycle state transition
// until the Handle's state channel closes. It never drives exit-code
// decisions itself; handle.Wait (called separately in run) owns that.
func logStateTransitions(states <-chan lifecycle.State) {
	for s := range states {
		event := logging.Info().Str("state", s.Kind.String())
		if s.Address != "" {
			event = event.Str("address", s.Address)
		}
		if s.SchemaHash != "" {
			event = event.Str("schema_hash", s.SchemaHash)
		}
		event.Msg("gatewaycore: lifecycle state transition")
	}
}
