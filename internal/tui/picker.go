// Package tui provides terminal user interface components for sandboxctl
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agent-ops/sandboxctl/internal/backend"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionStatus
	ActionHibernate
	ActionTerminate
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action  Action
	Sandbox *backend.Info
}

// sandboxItem implements list.Item for sandbox display
type sandboxItem struct {
	info   *backend.Info
	uptime string
}

func (i sandboxItem) Title() string {
	if session := i.info.Labels[backend.LabelSessionID]; session != "" {
		return session
	}
	return i.info.ID
}

func (i sandboxItem) Description() string {
	statusIcon := "●"
	state := "stopped"
	if i.info.Running {
		statusIcon = "✓"
		state = "running"
	}

	workspace := i.info.Labels[backend.LabelWorkspace]
	if workspace == "" {
		workspace = "-"
	}

	return fmt.Sprintf("%s %s | %s | %s | %s | %s",
		statusIcon,
		state,
		i.uptime,
		i.info.Labels[backend.LabelUserID],
		workspace,
		truncateID(i.info.ID, 12),
	)
}

func (i sandboxItem) FilterValue() string {
	return i.info.Labels[backend.LabelSessionID] + " " + i.info.ID
}

func truncateID(id string, maxLen int) string {
	if len(id) <= maxLen {
		return id
	}
	return id[:maxLen]
}

// uptimeFor renders the time since the sandbox started, or "stopped".
func uptimeFor(info *backend.Info, now time.Time) string {
	if !info.Running || info.StartedAt.IsZero() {
		return "stopped"
	}
	return now.Sub(info.StartedAt).Round(time.Second).String()
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the sandbox picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new sandbox picker
func NewPicker(sandboxes []*backend.Info) Model {
	now := time.Now()
	items := make([]list.Item, len(sandboxes))
	for i, info := range sandboxes {
		items[i] = sandboxItem{
			info:   info,
			uptime: uptimeFor(info, now),
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "sandboxctl - Select Sandbox"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(sandboxItem); ok {
				m.result = PickerResult{
					Action:  ActionStatus,
					Sandbox: item.info,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "h":
			if item, ok := m.list.SelectedItem().(sandboxItem); ok {
				m.result = PickerResult{
					Action:  ActionHibernate,
					Sandbox: item.info,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "t":
			if item, ok := m.list.SelectedItem().(sandboxItem); ok {
				m.result = PickerResult{
					Action:  ActionTerminate,
					Sandbox: item.info,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Status  [h] Hibernate  [t] Terminate  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive sandbox picker
func RunPicker(sandboxes []*backend.Info) (PickerResult, error) {
	if len(sandboxes) == 0 {
		return PickerResult{Action: ActionQuit}, nil
	}

	m := NewPicker(sandboxes)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker is a non-interactive renderer that just lists sandboxes
func SimplePicker(sandboxes []*backend.Info) string {
	var sb strings.Builder

	sb.WriteString("sandboxctl - Sandboxes\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(sandboxes) == 0 {
		sb.WriteString("No sandboxes found.\n")
		sb.WriteString("Create one with: sandboxctl create --session <id>\n")
		return sb.String()
	}

	now := time.Now()
	for i, info := range sandboxes {
		statusIcon := "●"
		if info.Running {
			statusIcon = "✓"
		}

		session := info.Labels[backend.LabelSessionID]
		if session == "" {
			session = "-"
		}

		sb.WriteString(fmt.Sprintf("%d. %s %s (%s)\n",
			i+1, statusIcon, session, truncateID(info.ID, 12)))
		sb.WriteString(fmt.Sprintf("   Uptime: %s | User: %s | Workspace: %s\n\n",
			uptimeFor(info, now), info.Labels[backend.LabelUserID], info.Labels[backend.LabelWorkspace]))
	}

	return sb.String()
}
