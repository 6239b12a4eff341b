package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agent-ops/sandboxctl/internal/backend"
)

func testInfo() *backend.Info {
	return &backend.Info{
		ID:        "sb-0123456789abcdef",
		Running:   true,
		StartedAt: time.Now().Add(-90 * time.Minute),
		Labels: map[string]string{
			backend.LabelSessionID: "user:sess-1",
			backend.LabelUserID:    "user-1",
			backend.LabelWorkspace: "myrepo",
		},
	}
}

func TestTruncateID(t *testing.T) {
	tests := []struct {
		id     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"sb-0123456789abcdef", 12, "sb-012345678"},
		{"", 10, ""},
		{"exactly10!", 10, "exactly10!"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := truncateID(tt.id, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncateID(%q, %d) = %q, want %q", tt.id, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestSandboxItemMethods(t *testing.T) {
	info := testInfo()
	item := sandboxItem{info: info, uptime: "1h30m0s"}

	t.Run("Title", func(t *testing.T) {
		if got := item.Title(); got != "user:sess-1" {
			t.Errorf("Title() = %q, want session label", got)
		}
	})

	t.Run("Title falls back to ID", func(t *testing.T) {
		bare := &backend.Info{ID: "sb-x", Labels: map[string]string{}}
		if got := (sandboxItem{info: bare}).Title(); got != "sb-x" {
			t.Errorf("Title() = %q, want %q", got, "sb-x")
		}
	})

	t.Run("FilterValue", func(t *testing.T) {
		fv := item.FilterValue()
		if !strings.Contains(fv, "user:sess-1") || !strings.Contains(fv, "sb-0123456789abcdef") {
			t.Errorf("FilterValue() = %q", fv)
		}
	})

	t.Run("Description running", func(t *testing.T) {
		desc := item.Description()
		if !strings.Contains(desc, "✓") {
			t.Error("Description should contain running icon")
		}
		if !strings.Contains(desc, "running") {
			t.Error("Description should contain running state")
		}
		if !strings.Contains(desc, "1h30m0s") {
			t.Error("Description should contain uptime")
		}
		if !strings.Contains(desc, "user-1") {
			t.Error("Description should contain user label")
		}
	})

	t.Run("Description stopped", func(t *testing.T) {
		stopped := testInfo()
		stopped.Running = false
		desc := sandboxItem{info: stopped, uptime: "stopped"}.Description()
		if !strings.Contains(desc, "●") {
			t.Error("Description should contain stopped icon")
		}
		if !strings.Contains(desc, "stopped") {
			t.Error("Description should contain stopped state")
		}
	})
}

func TestUptimeFor(t *testing.T) {
	now := time.Now()

	t.Run("running", func(t *testing.T) {
		info := &backend.Info{Running: true, StartedAt: now.Add(-time.Hour)}
		if got := uptimeFor(info, now); got != "1h0m0s" {
			t.Errorf("uptimeFor() = %q, want 1h0m0s", got)
		}
	})

	t.Run("stopped", func(t *testing.T) {
		info := &backend.Info{Running: false, StartedAt: now.Add(-time.Hour)}
		if got := uptimeFor(info, now); got != "stopped" {
			t.Errorf("uptimeFor() = %q, want stopped", got)
		}
	})

	t.Run("no start time", func(t *testing.T) {
		info := &backend.Info{Running: true}
		if got := uptimeFor(info, now); got != "stopped" {
			t.Errorf("uptimeFor() = %q, want stopped", got)
		}
	})
}

func TestModelKeyHandling(t *testing.T) {
	infos := []*backend.Info{testInfo()}

	t.Run("quit with q", func(t *testing.T) {
		m := NewPicker(infos)
		newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		model := newModel.(Model)

		if model.result.Action != ActionQuit {
			t.Errorf("Action = %v, want ActionQuit", model.result.Action)
		}
		if !model.quitting {
			t.Error("Model should be quitting")
		}
		if cmd == nil {
			t.Error("Should return tea.Quit command")
		}
	})

	t.Run("quit with esc", func(t *testing.T) {
		m := NewPicker(infos)
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		model := newModel.(Model)

		if model.result.Action != ActionQuit {
			t.Errorf("Action = %v, want ActionQuit", model.result.Action)
		}
	})

	t.Run("status with enter", func(t *testing.T) {
		m := NewPicker(infos)
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model := newModel.(Model)

		if model.result.Action != ActionStatus {
			t.Errorf("Action = %v, want ActionStatus", model.result.Action)
		}
		if model.result.Sandbox == nil || model.result.Sandbox.ID != infos[0].ID {
			t.Errorf("Sandbox = %+v", model.result.Sandbox)
		}
	})

	t.Run("hibernate with h", func(t *testing.T) {
		m := NewPicker(infos)
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
		model := newModel.(Model)

		if model.result.Action != ActionHibernate {
			t.Errorf("Action = %v, want ActionHibernate", model.result.Action)
		}
	})

	t.Run("terminate with t", func(t *testing.T) {
		m := NewPicker(infos)
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
		model := newModel.(Model)

		if model.result.Action != ActionTerminate {
			t.Errorf("Action = %v, want ActionTerminate", model.result.Action)
		}
	})

	t.Run("window size update", func(t *testing.T) {
		m := NewPicker(infos)
		newModel, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
		model := newModel.(Model)

		if model.width != 100 {
			t.Errorf("Width = %d, want 100", model.width)
		}
		if model.height != 50 {
			t.Errorf("Height = %d, want 50", model.height)
		}
		if cmd != nil {
			t.Error("Window size update should not return a command")
		}
	})
}

func TestModelInit(t *testing.T) {
	m := Model{}
	if cmd := m.Init(); cmd != nil {
		t.Error("Init() should return nil")
	}
}

func TestModelView(t *testing.T) {
	infos := []*backend.Info{testInfo()}

	t.Run("normal view contains help", func(t *testing.T) {
		m := NewPicker(infos)
		view := m.View()

		if !strings.Contains(view, "[enter] Status") {
			t.Error("View should contain status help")
		}
		if !strings.Contains(view, "[h] Hibernate") {
			t.Error("View should contain hibernate help")
		}
		if !strings.Contains(view, "[q] Quit") {
			t.Error("View should contain quit help")
		}
	})

	t.Run("quitting view is empty", func(t *testing.T) {
		m := NewPicker(infos)
		m.quitting = true
		if view := m.View(); view != "" {
			t.Errorf("Quitting view should be empty, got %q", view)
		}
	})
}

func TestRunPickerEmptySandboxes(t *testing.T) {
	result, err := RunPicker(nil)
	if err != nil {
		t.Fatalf("RunPicker with no sandboxes failed: %v", err)
	}
	if result.Action != ActionQuit {
		t.Errorf("Empty list should return ActionQuit, got %v", result.Action)
	}
}

func TestSimplePicker(t *testing.T) {
	t.Run("empty sandboxes", func(t *testing.T) {
		output := SimplePicker(nil)

		if !strings.Contains(output, "No sandboxes found") {
			t.Error("Should indicate no sandboxes found")
		}
		if !strings.Contains(output, "sandboxctl create") {
			t.Error("Should show how to create a sandbox")
		}
	})

	t.Run("with sandboxes", func(t *testing.T) {
		second := testInfo()
		second.ID = "sb-second"
		second.Running = false
		second.Labels = map[string]string{
			backend.LabelSessionID: "user:sess-2",
			backend.LabelUserID:    "user-2",
		}

		output := SimplePicker([]*backend.Info{testInfo(), second})

		if !strings.Contains(output, "sandboxctl - Sandboxes") {
			t.Error("Should contain title")
		}
		if !strings.Contains(output, "user:sess-1") {
			t.Error("Should contain first session")
		}
		if !strings.Contains(output, "user:sess-2") {
			t.Error("Should contain second session")
		}
		if !strings.Contains(output, "myrepo") {
			t.Error("Should contain workspace label")
		}
	})
}

func TestActionConstants(t *testing.T) {
	actions := []Action{ActionNone, ActionStatus, ActionHibernate, ActionTerminate, ActionQuit}
	seen := make(map[Action]bool)

	for _, a := range actions {
		if seen[a] {
			t.Errorf("Duplicate action value: %v", a)
		}
		seen[a] = true
	}
}
