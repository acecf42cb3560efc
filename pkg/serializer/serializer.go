/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package serializer writes plan collections to various output formats.
//
// The package supports three output formats:
//   - JSON: machine-readable structured data with indentation
//   - YAML: human-readable configuration format
//   - Table: human-readable tabular output
package serializer

import "context"

// Serializer writes a payload to its configured destination.
type Serializer interface {
	Serialize(ctx context.Context, payload any) error
}

// Closer is an optional interface for Serializers that hold resources.
type Closer interface {
	Close() error
}
