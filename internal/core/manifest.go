package core

import (
	"fmt"
	"strings"
)

// RequiredPart is one entry of the required-parts manifest.
type RequiredPart struct {
	Description string `json:"description" mapstructure:"description" validate:"required,max=256"`
	Required    int    `json:"required" mapstructure:"required" validate:"min=0"`
}

// Manifest is the ordered, immutable list of parts every aircraft must carry.
type Manifest struct {
	parts []RequiredPart
}

// ReferenceParts is the built-in manifest.
var ReferenceParts = []RequiredPart{
	{Description: "Aft pintle sin", Required: 2},
	{Description: "Fwd pintle sin", Required: 2},
	{Description: "Torque link", Required: 1},
	{Description: "Brake assembly", Required: 4},
	{Description: "Wheel assembly", Required: 4},
	{Description: "Landing light", Required: 2},
}

// NewManifest validates parts and returns a manifest preserving their order.
// Descriptions are trimmed; two entries that normalize to the same key are rejected.
func NewManifest(parts []RequiredPart) (*Manifest, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: no parts", ErrInvalidManifest)
	}

	seen := make(map[string]int, len(parts))
	out := make([]RequiredPart, len(parts))
	for i, p := range parts {
		p.Description = strings.TrimSpace(p.Description)
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("%w: part %d (%q): %s", ErrInvalidManifest, i+1, p.Description, describeValidation(err))
		}
		key := NormalizeDescription(p.Description)
		if j, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %q (entries %d and %d)", ErrDuplicatePart, p.Description, j+1, i+1)
		}
		seen[key] = i
		out[i] = p
	}
	return &Manifest{parts: out}, nil
}

// MustManifest is NewManifest that panics on error, for package-level defaults.
func MustManifest(parts []RequiredPart) *Manifest {
	m, err := NewManifest(parts)
	if err != nil {
		panic(err)
	}
	return m
}

// DefaultManifest returns the built-in reference manifest.
func DefaultManifest() *Manifest {
	return MustManifest(ReferenceParts)
}

// Parts returns a copy of the manifest entries in declaration order.
func (m *Manifest) Parts() []RequiredPart {
	out := make([]RequiredPart, len(m.parts))
	copy(out, m.parts)
	return out
}

// Len returns the number of parts.
func (m *Manifest) Len() int {
	return len(m.parts)
}
