package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/argo-tdi/internal/types"
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true)
	HelpStyle    = lipgloss.NewStyle().Faint(true)
	BullishStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	BearishStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	CellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// FormatDirection renders a direction with an arrow.
func FormatDirection(direction types.Direction) string {
	switch direction {
	case types.DirectionBullish:
		return BullishStyle.Render("▲ bullish")
	case types.DirectionBearish:
		return BearishStyle.Render("▼ bearish")
	default:
		return string(direction)
	}
}

// RenderAlerts renders the alerts of a replay as a table.
func RenderAlerts(symbol string, alerts []types.AlertEvent) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("%s: %d alerts", symbol, len(alerts))))
	b.WriteString("\n")

	if len(alerts) == 0 {
		b.WriteString(HelpStyle.Render("No crossings fired."))
		b.WriteString("\n")

		return b.String()
	}

	rows := make([][]string, 0, len(alerts))
	for _, alert := range alerts {
		rows = append(rows, []string{
			alert.Time.UTC().Format("2006-01-02 15:04"),
			alert.Kind.Title(),
			FormatDirection(alert.Direction),
			fmt.Sprintf("%d", alert.MarkIndex),
			fmt.Sprintf("%.2f", alert.Lines.Price),
			fmt.Sprintf("%.2f", alert.Lines.Signal),
			fmt.Sprintf("%.2f", alert.Lines.Middle),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Time", "Alert", "Direction", "Bar", "Price", "Signal", "Base").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}

			return CellStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	return b.String()
}
