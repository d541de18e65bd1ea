package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goalwing/goalwing/progress"
)

// defaultBarWidth is the character width of a rendered progress bar.
const defaultBarWidth = 20

// BandStyle maps a completion band to its display style.
func BandStyle(band progress.Band) lipgloss.Style {
	switch band {
	case progress.BandDone:
		return StyleBandDone
	case progress.BandHigh:
		return StyleBandHigh
	case progress.BandMid:
		return StyleBandMid
	default:
		return StyleBandLow
	}
}

// ProgressBar renders a fixed-width bar plus a percentage label, colored
// by the completion band.
func ProgressBar(summary progress.Summary) string {
	percent := summary.Percent()
	filled := percent * defaultBarWidth / 100
	if filled > defaultBarWidth {
		filled = defaultBarWidth
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", defaultBarWidth-filled)
	style := BandStyle(progress.BandFor(percent))
	return fmt.Sprintf("%s %s", style.Render(bar), style.Render(fmt.Sprintf("%3d%%", percent)))
}

// DayBar renders one row of a day-by-day chart: date, bar, and the
// done/total count for that day.
func DayBar(stat progress.DayStat) string {
	summary := progress.Summary{Done: stat.Done, Total: stat.Total}
	if stat.Total == 0 {
		return fmt.Sprintf("%s  %s", StyleSubtle.Render(stat.Date), StyleSubtle.Render("no tasks"))
	}
	return fmt.Sprintf("%s  %s  %s", StyleText.Render(stat.Date), ProgressBar(summary),
		StyleSubtle.Render(fmt.Sprintf("%d/%d done", stat.Done, stat.Total)))
}
