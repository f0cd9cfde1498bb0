// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/tomtom215/gatewaycore/internal/lifecycle"
)

// ErrEmptySchema is returned by ParseSchema when given empty or
// whitespace-only content.
var ErrEmptySchema = errors.New("registry: schema text is empty")

// Schema is the minimal lifecycle.Schema implementation this package (and
// cmd/server's watched schema file source) produces: the raw
// supergraph text plus a stable content hash. It stands in for the real
// federation schema parser, which is out of scope for the lifecycle core
// here.
type Schema struct {
	Text string
	hash string
}

// Hash returns the schema's content hash, reported in State.Running.
func (s Schema) Hash() string { return s.hash }

// SupergraphResult is the uplink response body shape this core depends on
// everything else about the registry protocol's response is
// opaque.
type SupergraphResult struct {
	Schema string `json:"schema"`
}

// ParseSchema validates and wraps raw supergraph text into a Schema. It
// is the minimal stand-in for the external schema-parser collaborator:
// real federation parsing (type merging, query planning) is out of scope
// here, but callers get a stable, content-addressed Schema value either
// way.
func ParseSchema(data []byte) (lifecycle.Schema, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, ErrEmptySchema
	}
	sum := sha256.Sum256([]byte(text))
	return Schema{Text: text, hash: hex.EncodeToString(sum[:])}, nil
}
