package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var styles = struct {
	title  lipgloss.Style
	alert  lipgloss.Style
	notice lipgloss.Style
	muted  lipgloss.Style
	ok     lipgloss.Style
}{
	title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
	alert:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87")),
	notice: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#FFB86C")),
	muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")),
}

// renderTable dibuja filas con encabezado.
func renderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return styles.muted.Render("(sin registros)")
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}
