package image

import (
	"testing"

	"github.com/agent-ops/sandboxctl/internal/config"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"base", TypeBase},
		{"", TypeBase},
		{"repo-specific", TypeBase}, // unknown types fall back, no error
		{"BASE", TypeBase},
	}

	for _, tt := range tests {
		if got := ParseType(tt.in); got != tt.want {
			t.Errorf("ParseType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	s := config.Defaults()

	ref := Resolve(TypeBase, s)
	if ref.Tag != s.BaseImage {
		t.Errorf("Resolve(TypeBase).Tag = %q, want %q", ref.Tag, s.BaseImage)
	}
	if ref.SnapshotID != "" {
		t.Errorf("Resolve(TypeBase).SnapshotID = %q, want empty", ref.SnapshotID)
	}
}

func TestFromSnapshot(t *testing.T) {
	ref := FromSnapshot("img_123")
	if ref.SnapshotID != "img_123" || ref.Tag != "" {
		t.Errorf("FromSnapshot = %+v", ref)
	}
}
