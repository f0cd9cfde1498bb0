// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

/*
Command server is a thin, illustrative wiring of the lifecycle core
(internal/lifecycle) around the reference chi router factory
(internal/chirouter). It exists to demonstrate one concrete way to
assemble source adapters from the gateway's own bootstrap
configuration and hand them to lifecycle.Serve; it is not itself the
product.

# Source selection

Schema source, in priority order:

  - GATEWAY_SCHEMA_PATH set: watch the local supergraph SDL file via
    lifecycle.SchemaWatchedFile, parsed with registry.ParseSchema.
  - registry.enabled (config file or GATEWAY_REGISTRY_ENABLED=true):
    poll Apollo Uplink via internal/registry.Source.
  - otherwise: a static stub schema.

Configuration source, in priority order:

  - GATEWAY_CONFIG_PATH set: watch the local YAML file via
    lifecycle.ConfigurationWatchedFile, parsed with chirouter.ValidateYAML.
  - otherwise: a static chirouter.DefaultConfig.

Shutdown source is always lifecycle.CtrlCShutdownSource: SIGINT or
SIGTERM requests a graceful stop.

# Exit codes

Handle.Wait's result maps directly to the process exit code: nil (a
clean Stopped transition) exits 0, any other error (an Errored
transition, or a startup failure before the state machine could run at
all) exits 1. The lifecycle core never calls os.Exit itself; only this
command does, and only after Wait returns.

# See also

  - internal/lifecycle: the event multiplexer, state machine, and Handle
  - internal/chirouter: the reference RouterServiceFactory/HttpServerFactory
  - internal/config: the gateway's own bootstrap configuration
  - internal/registry: the Apollo Uplink poller and schema parser
*/
package main
