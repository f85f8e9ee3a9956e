//go:build tools

// Package tools imports development dependencies to ensure they're
// tracked in go.mod. Install with: go install -tags tools ./...
package tools

import (
	_ "gotest.tools/gotestsum"
)
