// ABOUTME: Output helpers shared by the CLI commands.
// ABOUTME: Pads by display width so Korean labels line up.
package main

import (
	"github.com/harperreed/fitplan/internal/storage"
	"github.com/mattn/go-runewidth"
)

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

func formatNumber(v float64) string {
	return storage.FormatNumber(v)
}
