package helpers

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/depot/shredder/pkg/compat"
)

var (
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// PrintReport writes conversion notes, one per line.
func PrintReport(w io.Writer, report *compat.Report) {
	summary := compat.SummarizeReport(report)
	if compat.HasDroppedFeatures(report) {
		fmt.Fprintln(w, WarnStyle.Render(summary))
	} else {
		fmt.Fprintln(w, InfoStyle.Render(summary))
	}

	for _, issue := range report.Issues {
		label := issue.Level.String()
		if issue.Job != "" {
			label = fmt.Sprintf("%s, job %s", label, issue.Job)
		}
		fmt.Fprintf(w, "- [%s] %s\n", label, issue.Message)
		if issue.Suggestion != "" {
			fmt.Fprintf(w, "  %s\n", MutedStyle.Render(issue.Suggestion))
		}
	}
}
