// Package reporter prints a human-facing summary of a scan run to stderr.
// It carries none of the finding data itself: the JSON finding array
// written by scanner.OutputFindings is the sole machine-readable contract.
package reporter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opsource/secrethog/pkg/types"
)

// Reporter renders a colorful run summary.
type Reporter struct {
	style Style
}

// Style contains all the styling definitions.
type Style struct {
	Header    lipgloss.Style
	Count     lipgloss.Style
	Reason    lipgloss.Style
	Detail    lipgloss.Style
	Separator lipgloss.Style
	Empty     lipgloss.Style
}

// NewReporter creates a Reporter with default styling.
func NewReporter() *Reporter {
	return &Reporter{style: createDefaultStyle()}
}

func createDefaultStyle() Style {
	return Style{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true).
			Margin(1, 0),

		Count: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true).
			Margin(0, 0, 1, 0),

		Reason: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Bold(true),

		Detail: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC")).
			Margin(0, 0, 0, 3),

		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Margin(0, 0, 1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")),
	}
}

// Summary renders a run summary for findings found in repoLabel.
func (r *Reporter) Summary(repoLabel string, findings []types.Finding) string {
	var out strings.Builder

	out.WriteString(r.style.Header.Render(fmt.Sprintf("secrethog: scanned %s", repoLabel)))
	out.WriteString("\n")

	if len(findings) == 0 {
		out.WriteString(r.style.Empty.Render("no findings"))
		out.WriteString("\n")
		return out.String()
	}

	out.WriteString(r.style.Count.Render(fmt.Sprintf("%d finding(s)", len(findings))))
	out.WriteString("\n")
	out.WriteString(r.style.Separator.Render(strings.Repeat("-", 50)))
	out.WriteString("\n")

	byReason := make(map[string]int)
	order := make([]string, 0)
	for _, f := range findings {
		if _, ok := byReason[f.Reason]; !ok {
			order = append(order, f.Reason)
		}
		byReason[f.Reason]++
	}

	for _, reason := range order {
		out.WriteString(r.style.Reason.Render(fmt.Sprintf("%s (%d)", reason, byReason[reason])))
		out.WriteString("\n")
	}

	paths := make(map[string]struct{})
	for _, f := range findings {
		paths[f.Path] = struct{}{}
	}
	out.WriteString(r.style.Detail.Render(fmt.Sprintf("across %d file(s)", len(paths))))
	out.WriteString("\n")

	return out.String()
}
