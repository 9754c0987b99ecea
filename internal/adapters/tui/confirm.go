package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"workshop/internal/adapters/tui/styles"
	"workshop/internal/domain"
)

// ConfirmKeyMap defines key bindings for the import confirmation view
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
	Up      key.Binding
	Down    key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "import"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc", "q"),
		key.WithHelp("n/esc", "cancel"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll down"),
	),
}

// ConfirmModel shows a dry-run preview and collects a single yes/no
// decision. The preview is immutable, so the view can stay open as
// long as the user likes.
type ConfirmModel struct {
	preview   *domain.DryRunPreview
	viewport  viewport.Model
	keys      ConfirmKeyMap
	ready     bool
	Confirmed bool
	Done      bool
}

// NewConfirmModel creates a confirmation view for a preview
func NewConfirmModel(preview *domain.DryRunPreview) *ConfirmModel {
	return &ConfirmModel{
		preview: preview,
		keys:    DefaultConfirmKeys,
	}
}

// Init implements tea.Model
func (m *ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 6
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.viewport.SetContent(m.previewContent())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.Confirmed = true
			m.Done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.Confirmed = false
			m.Done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *ConfirmModel) View() string {
	if !m.ready {
		return "loading preview..."
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Import preview: " + m.preview.Root))
	b.WriteString("\n")
	b.WriteString(m.headerLine())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(RenderConfirmPrompt("Import these files?"))
	return styles.App.Render(b.String())
}

func (m *ConfirmModel) headerLine() string {
	a := m.preview.Analysis
	parts := []string{
		styles.SupportedText.Render(fmt.Sprintf("%d supported", len(m.preview.Supported))),
		styles.BlockedText.Render(fmt.Sprintf("%d blocked", len(m.preview.Blocked))),
		styles.MetadataText.Render(fmt.Sprintf("%d metadata", len(m.preview.Metadata))),
		styles.MutedText.Render(fmt.Sprintf("%s structure, confidence %.0f/100, %s",
			a.Structure, a.ConfidenceScore, domain.FormatBytes(m.preview.EstimatedBytes))),
	}
	return strings.Join(parts, styles.MutedText.Render("  •  "))
}

func (m *ConfirmModel) previewContent() string {
	var b strings.Builder

	b.WriteString(m.preview.Tree.Render())

	if len(m.preview.Blocked) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.BlockedText.Render("Blocked files:"))
		b.WriteString("\n")
		for _, fc := range m.preview.Blocked {
			fmt.Fprintf(&b, "  %s (%s)\n", fc.RelPath, fc.BlockReason)
		}
	}

	if len(m.preview.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range m.preview.Warnings {
			b.WriteString(styles.WarningText.Render("! " + w))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to import, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}

// Confirm runs the confirmation view and returns the user's decision.
func Confirm(preview *domain.DryRunPreview) (bool, error) {
	model := NewConfirmModel(preview)
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation view failed: %w", err)
	}
	m, ok := final.(*ConfirmModel)
	if !ok || !m.Done {
		return false, nil
	}
	return m.Confirmed, nil
}
