// =============================================================================
// Transfer Payload Converter - Error Catalog
// =============================================================================
//
// This module holds the ordered list of error descriptors that can be attached
// to ERROR payloads. Descriptors are referenced by position, so the order of a
// catalog is part of its contract.
//
// SOURCES:
//   - Default(): the built-in catalog, embedded as YAML configuration data
//   - Load():    a catalog file (.yaml, .yml, .json or .xlsx)
//
// A catalog is never mutated after construction. It is safe to share one
// catalog between goroutines.
//
// =============================================================================

package catalog

import (
	_ "embed"
)

// =============================================================================
// ERROR DESCRIPTOR
// =============================================================================

// ErrorDescriptor is a single (code, description) catalog entry.
type ErrorDescriptor struct {
	// Code is a namespaced identifier, e.g. "checkout_card/400".
	Code string `yaml:"code" json:"code" validate:"required"`

	// Description is the human-readable failure reason.
	Description string `yaml:"description" json:"description" validate:"required"`
}

// Generic is substituted when a selection does not resolve to a catalog entry.
var Generic = ErrorDescriptor{
	Code:        "generic_error",
	Description: "An error occurred during processing",
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is an ordered, immutable list of error descriptors.
type Catalog struct {
	entries []ErrorDescriptor
}

// New creates a catalog from entries. The slice is copied.
func New(entries []ErrorDescriptor) *Catalog {
	copied := make([]ErrorDescriptor, len(entries))
	copy(copied, entries)
	return &Catalog{entries: copied}
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of the entries in catalog order.
func (c *Catalog) Entries() []ErrorDescriptor {
	if c == nil {
		return nil
	}
	copied := make([]ErrorDescriptor, len(c.entries))
	copy(copied, c.entries)
	return copied
}

// At returns the entry at index and whether index is in range.
func (c *Catalog) At(index int) (ErrorDescriptor, bool) {
	if c == nil || index < 0 || index >= len(c.entries) {
		return ErrorDescriptor{}, false
	}
	return c.entries[index], true
}

// Resolve returns the entry at index, or Generic when index is out of range.
func (c *Catalog) Resolve(index int) ErrorDescriptor {
	if d, ok := c.At(index); ok {
		return d
	}
	return Generic
}

// =============================================================================
// DEFAULT CATALOG
// =============================================================================

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

var defaultCatalog = mustParseYAML(defaultCatalogYAML)

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

func mustParseYAML(data []byte) *Catalog {
	c, err := ParseYAML(data)
	if err != nil {
		panic("catalog: invalid embedded default catalog: " + err.Error())
	}
	return c
}
