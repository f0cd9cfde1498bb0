// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

/*
Package config loads the gateway process's own bootstrap knobs via
knadh/koanf/v2, layering built-in defaults, an optional YAML file, and
GATEWAY_-prefixed environment variables (highest priority):

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatal(err)
	}

This is distinct from the opaque Configuration value the lifecycle state
machine receives via lifecycle.Event; that value is produced and
validated by an external collaborator and this package never parses it.
WatchConfigFile exposes the same koanf fsnotify-backed file watch the
lifecycle WatchedFile source adapter subscribes with, for callers that
want change notifications on the bootstrap file itself.
*/
package config
