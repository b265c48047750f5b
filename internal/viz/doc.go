// Package viz renders run results for the terminal.
//
// Summaries, sizing reports and suitability checks are laid out as lipgloss
// panels; time series are drawn with asciigraph. Colors follow the current
// [Theme], selected with [SetTheme].
package viz
