// Package tui provides terminal user interface components for sandboxctl.
//
// This package uses the Bubble Tea framework to create interactive terminal
// interfaces, primarily the sandbox picker behind `sandboxctl pick`.
//
// # Sandbox Picker
//
// The picker displays sandboxes known to the backend and lets the operator
// choose one plus an action:
//
//	result, err := tui.RunPicker(infos)
//	switch result.Action {
//	case tui.ActionStatus:
//	    // Report status for result.Sandbox
//	case tui.ActionHibernate:
//	    // Snapshot and stop result.Sandbox
//	case tui.ActionTerminate:
//	    // Stop result.Sandbox without a snapshot
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// # Picker Features
//
//   - Lists all managed sandboxes with session and user labels
//   - Keyboard navigation (j/k or arrows) with fuzzy filtering
//   - Quick actions: Enter (status), h (hibernate), t (terminate), q (quit)
//   - Color-coded running/stopped indicators
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
