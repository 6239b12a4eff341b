// Package image holds the image-selection policy for sandboxes.
//
// Image types are an explicit enumerated variant with a total mapping to
// image references, so adding a type is a compile-time-checked extension
// rather than a string-keyed fallback. Unrecognized type strings parse to
// TypeBase without error; restores bypass the type mapping entirely and
// reference a filesystem snapshot by ID.
package image

import "github.com/agent-ops/sandboxctl/internal/config"

// Type selects which image family a sandbox boots from.
type Type int

const (
	// TypeBase is the full dev-environment image and the fallback for
	// unrecognized type strings.
	TypeBase Type = iota
)

// String returns the wire name of the type.
func (t Type) String() string {
	switch t {
	case TypeBase:
		return "base"
	default:
		return "base"
	}
}

// ParseType maps a type string to a Type. Unrecognized values fall back
// to TypeBase; this is a policy decision, not an error.
func ParseType(s string) Type {
	switch s {
	case "base", "":
		return TypeBase
	default:
		return TypeBase
	}
}

// Ref references a concrete image in the backend: either a named tag or a
// snapshot image produced by hibernation. Exactly one field is set.
type Ref struct {
	Tag        string
	SnapshotID string
}

// FromSnapshot returns a Ref for a hibernation snapshot image.
func FromSnapshot(snapshotImageID string) Ref {
	return Ref{SnapshotID: snapshotImageID}
}

// Resolve returns the image reference for a type. The mapping is total
// over Type.
func Resolve(t Type, settings *config.Settings) Ref {
	switch t {
	case TypeBase:
		return Ref{Tag: settings.BaseImage}
	default:
		return Ref{Tag: settings.BaseImage}
	}
}
