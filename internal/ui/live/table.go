package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// defaultColumns returns the columns used before the first resize.
func defaultColumns() []table.Column {
	return columnsForWidth(100)
}

// columnsForWidth gives the model name column whatever the fixed columns leave.
func columnsForWidth(width int) []table.Column {
	const fixed = 5 + 8 + 9 + 11 + 11 + 16 + 16
	nameWidth := max(width-fixed-8, 10)
	return []table.Column{
		{Title: "GT", Width: 5},
		{Title: "Model", Width: nameWidth},
		{Title: "Status", Width: 8},
		{Title: "Elapsed", Width: 9},
		{Title: "Learn +/-", Width: 11},
		{Title: "Test +/-", Width: 11},
		{Title: "DFA size/F1", Width: 16},
		{Title: "VPA size/F1", Width: 16},
	}
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatIndex(row.Index),
			formatName(row.Name),
			formatStatus(row, noColor),
			formatRowDuration(row, now),
			formatBalance(row, row.Learning.Positive, row.Learning.Negative),
			formatBalance(row, row.Test.Positive, row.Test.Negative),
			formatLearner(row, row.DFA),
			formatLearner(row, row.VPA),
		})
	}
	return rows
}
