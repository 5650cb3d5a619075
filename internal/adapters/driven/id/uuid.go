// Package id provides the UUID implementation of driven.IDGenerator.
package id

import (
	"strings"

	"github.com/google/uuid"

	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
)

// Ensure Generator implements the interface.
var _ driven.IDGenerator = Generator{}

// Generator produces prefixed random UUIDs. Random identifiers keep
// concurrent callers collision-free, unlike wall-clock derived IDs.
type Generator struct{}

// NewID returns "<kind>_<uuid-without-dashes>".
func (Generator) NewID(kind string) string {
	return kind + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
