package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"hrconsole/internal/attendance"
	"hrconsole/internal/export"
)

// statusColumn is the index of the Status column in export.Header.
const statusColumn = 6

// RenderRecords renders records as a bordered table with coloured statuses.
func RenderRecords(styles Styles, records []attendance.DailyRecord) string {
	if len(records) == 0 {
		return styles.Muted.Render("No attendance records.")
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, export.Row(r))
	}

	header := styles.Bold.Padding(0, 1)
	cell := styles.Body.Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Theme.Border)).
		Headers(export.Header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == statusColumn && row >= 0 && row < len(records) {
				return cell.Foreground(StatusColor(records[row].Status))
			}
			return cell
		})

	return t.Render()
}

// RenderCounts renders a one-line status tally in display order.
func RenderCounts(styles Styles, counts attendance.StatusCounts) string {
	parts := make([]string, 0, len(attendance.AllStatuses))
	for _, s := range attendance.AllStatuses {
		n := counts[s]
		if n == 0 && s == attendance.StatusUnknown {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d", styles.StatusText(s), n))
	}
	return strings.Join(parts, styles.Muted.Render("  |  "))
}
