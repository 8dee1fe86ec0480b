package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
)

var (
	wordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F780FF")).
			Bold(true)
	meaningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BE9FD"))
	rootStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4")).
			Italic(true)
	storyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E9E9F4")).
			PaddingLeft(2)
	correctStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B")).
			Bold(true)
	wrongStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)
)

// renderItems formats reconciled items as a styled study list.
func renderItems(items []domain.ReconciledItem) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s  %s\n", wordStyle.Render(it.Word), meaningStyle.Render(it.Meaning))
		b.WriteString("  " + rootStyle.Render(it.Rootword) + "\n")
		if it.Story != "" {
			b.WriteString(storyStyle.Render(it.Story) + "\n")
		}
	}
	return b.String()
}

// renderGrade formats a verdict as one styled line.
func renderGrade(r domain.GradeResult) string {
	verdict := wrongStyle.Render("✗ wrong")
	if r.IsCorrect {
		verdict = correctStyle.Render("✓ correct")
	}
	return verdict + "  " + r.Feedback + "\n"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
