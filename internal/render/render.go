// Package render turns analysis results into styled terminal output.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/oceanlens/oceanlens/internal/analysis"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	traitBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1).
			Align(lipgloss.Center)

	traitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	traitValueStyle = lipgloss.NewStyle().
			Bold(true)

	insightTypeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("2"))
)

// Analysis renders one result: header, trait grid, insight groups.
func Analysis(res analysis.Result, index int) string {
	var sb strings.Builder

	title := "Analysis"
	if index > 0 {
		title = fmt.Sprintf("Analysis #%d", index)
	}
	if res.Username != "" {
		title += " - " + res.Username
	}
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")

	if !res.AnalyzedAt.IsZero() {
		sb.WriteString(dateStyle.Render(res.AnalyzedAt.Format("Jan 2, 2006 15:04")))
		sb.WriteString("  ")
	}
	sb.WriteString(dateStyle.Render(fmt.Sprintf("%d tweets analyzed", res.TweetsAnalyzed)))
	sb.WriteString("\n\n")

	sb.WriteString(traitGrid(res.TraitScores, score))
	sb.WriteString("\n")

	if len(res.InsightGroups) == 0 {
		sb.WriteString(dateStyle.Render("No insights available for this analysis"))
		sb.WriteString("\n")
		return sb.String()
	}
	for _, group := range res.InsightGroups {
		sb.WriteString(insightTypeStyle.Render(HumanizeType(group.Type)))
		sb.WriteString("\n")
		for _, text := range group.Texts {
			sb.WriteString("  • " + text + "\n")
		}
	}
	return sb.String()
}

// Averages renders the aggregate per-trait means across a history.
func Averages(avg map[string]float64, records int) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("Average across %d analyses", records)))
	sb.WriteString("\n\n")
	sb.WriteString(traitGrid(avg, func(v float64) string {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}))
	return sb.String()
}

func traitGrid(scores map[string]float64, format func(float64) string) string {
	boxes := make([]string, 0, len(analysis.Traits))
	for _, trait := range analysis.Traits {
		box := traitLabelStyle.Render(title(trait)) + "\n" +
			traitValueStyle.Render(format(scores[trait]))
		boxes = append(boxes, traitBoxStyle.Render(box))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...) + "\n"
}

// score formats a single record's score at full precision.
func score(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// HumanizeType turns an insight type label like "CORE_TRAIT" into
// "core trait" for display.
func HumanizeType(t string) string {
	return strings.ToLower(strings.ReplaceAll(t, "_", " "))
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
