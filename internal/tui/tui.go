package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Bold(true)
	snippetStyle  = lipgloss.NewStyle().Faint(true).PaddingLeft(2)
	severityStyle = map[model.Severity]lipgloss.Style{
		model.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		model.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		model.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		model.SeverityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

type modelT struct {
	findings []model.Finding
	cursor   int
}

func initialModel(findings []model.Finding) modelT { return modelT{findings: findings} }

func (m modelT) Init() tea.Cmd { return nil }

func (m modelT) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.findings)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m modelT) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(fmt.Sprintf("Findings (%d)", len(m.findings))))
	for i, f := range m.findings {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		sev := severityStyle[f.Severity].Render(string(f.Severity))
		fmt.Fprintf(&b, "%s%s [%s] %s:%d %s\n", prefix, f.RuleID, sev, f.File, f.Line, f.Message)
		if i == m.cursor && f.Snippet != "" {
			b.WriteString(snippetStyle.Render(f.Snippet))
			b.WriteByte('\n')
		}
	}
	b.WriteString("\nup/down to move, q to quit\n")
	return b.String()
}

// Run launches the findings browser.
func Run(findings []model.Finding) error {
	p := tea.NewProgram(initialModel(findings))
	_, err := p.Run()
	return err
}
