package evaluation

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// NamedMetrics pairs a model name with its scores; a slice keeps the table
// row order under the caller's control.
type NamedMetrics struct {
	Name    string
	Metrics Metrics
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	ruleStyle   = lipgloss.NewStyle().Faint(true)
)

// PrintResults renders a comparison table. With color disabled the styles
// degrade to plain text, so output is pipe-friendly.
func PrintResults(w io.Writer, results []NamedMetrics, color bool) {
	header := fmt.Sprintf("%-30s %10s %10s %10s %10s", "Model", "Accuracy", "Precision", "Recall", "F1")
	rule := strings.Repeat("-", len(header))
	if color {
		header = headerStyle.Render(header)
		rule = ruleStyle.Render(rule)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, rule)
	for _, r := range results {
		fmt.Fprintf(w, "%-30s %10.4f %10.4f %10.4f %10.4f\n",
			r.Name, r.Metrics.Accuracy, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1)
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}
