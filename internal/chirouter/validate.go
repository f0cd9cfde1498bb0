// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package chirouter

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/gatewaycore/internal/lifecycle"
)

// ValidateYAML is the external configuration validator collaborator:
// given UTF-8 YAML bytes, it returns either a validated
// lifecycle.Configuration or a structured error wrapping one of
// lifecycle.ErrDeserializeConfig / lifecycle.ErrConfig. It is the
// function ConfigurationWatchedFile's parse callback is built from in
// cmd/server.
//
// Fields the YAML document omits keep DefaultConfig's values: yaml.v3
// decodes in place onto an already-populated struct, which is this
// package's stand-in for koanf's layered default-then-override loading
// (internal/config/koanf.go) without pulling a second koanf instance into
// every reload's hot path.
func ValidateYAML(data []byte) (lifecycle.Configuration, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", lifecycle.ErrDeserializeConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", lifecycle.ErrConfig, err)
	}
	return cfg, nil
}
