package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jwalitptl/passmeter/internal/model"
	strengthService "github.com/jwalitptl/passmeter/internal/service/strength"
	"github.com/jwalitptl/passmeter/pkg/strength"
)

const meterWidth = 20

var (
	labelColors = map[string]lipgloss.Color{
		"Weak":   lipgloss.Color("#FF3838"),
		"Medium": lipgloss.Color("#FFB800"),
		"Good":   lipgloss.Color("#4D96FF"),
		"Strong": lipgloss.Color("#00D26A"),
	}

	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D26A"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB800"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF3838"))
	cellStyle    = lipgloss.NewStyle().PaddingRight(2)
)

func meter(score int, label string) string {
	filled := max(0, min(meterWidth, score*meterWidth/100))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", meterWidth-filled)
	style := lipgloss.NewStyle().Foreground(labelColors[label])
	return fmt.Sprintf("%s %3d/100 %s", style.Render(bar), score, style.Bold(true).Render(label))
}

func icon(kind strength.FeedbackKind) string {
	switch kind {
	case strength.KindSuccess:
		return successStyle.Render("✓")
	case strength.KindWarning:
		return warningStyle.Render("!")
	default:
		return errorStyle.Render("✗")
	}
}

func yesNo(b bool) string {
	if b {
		return successStyle.Render("yes")
	}
	return errorStyle.Render("no")
}

func table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		out := make([]string, len(cells))
		for i, c := range cells {
			out[i] = cellStyle.Width(widths[i] + 2).Render(style.Render(c))
		}
		return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, out...), " ")
	}

	lines := []string{line(header, headerStyle)}
	for _, row := range rows {
		lines = append(lines, line(row, lipgloss.NewStyle()))
	}
	return strings.Join(lines, "\n")
}

func renderAnalysis(w io.Writer, r *model.AnalyzeResponse) {
	policy, _ := strength.PolicyFor(r.AccountType)

	fmt.Fprintln(w, meter(r.Score, r.Label))
	fmt.Fprintf(w, "%s %s  %s %s\n",
		mutedStyle.Render("policy:"), policy.Name,
		mutedStyle.Render("meets requirements:"), yesNo(r.MeetsRequirements))
	fmt.Fprintf(w, "%s %s\n", mutedStyle.Render("estimated crack time:"), r.CrackTime)

	if len(r.Feedback) > 0 {
		fmt.Fprintln(w)
		for _, item := range r.Feedback {
			fmt.Fprintf(w, "  %s %s\n", icon(item.Kind), item.Message)
		}
	}

	if len(r.Patterns) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render("Patterns"))
		for _, p := range r.Patterns {
			fmt.Fprintf(w, "  - %s\n", p)
		}
	}

	rows := make([][]string, 0, len(r.Attacks))
	for _, a := range r.Attacks {
		rows = append(rows, []string{a.Name, a.Time})
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, table([]string{"Attack", "Time to crack"}, rows))

	if r.Advice != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.Advice)
	}
	if r.Suggestion != "" {
		fmt.Fprintf(w, "%s %s\n", titleStyle.Render("Try:"), r.Suggestion)
	}
}

func renderPolicies(w io.Writer, views []strengthService.PolicyView) {
	mark := func(b bool) string {
		if b {
			return "✓"
		}
		return "-"
	}

	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{
			v.Key, v.Name,
			fmt.Sprint(v.MinScore), fmt.Sprint(v.MinLength),
			mark(v.RequiresUppercase), mark(v.RequiresLowercase),
			mark(v.RequiresNumbers), mark(v.RequiresSymbols),
		})
	}
	fmt.Fprintln(w, table([]string{"Key", "Name", "Min score", "Min length", "Upper", "Lower", "Digits", "Symbols"}, rows))
}
