// internal/tui/table.go
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mwiater/tablechart/internal/derived"
)

var (
	headerCellStyle      = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle            = lipgloss.NewStyle().Padding(0, 1)
	unavailableCellStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("244"))
)

// MetricsTable renders derived metrics as a bordered two-column table. It
// returns an empty string when there is nothing to show.
func MetricsTable(metrics []derived.Metric, placeholder string) string {
	if len(metrics) == 0 {
		return ""
	}
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{m.Name, m.Display(placeholder)})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Category", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			if col == 1 && row >= 0 && row < len(metrics) && !metrics[row].Available {
				return unavailableCellStyle
			}
			return cellStyle
		})
	return t.Render()
}
