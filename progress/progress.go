// Package progress computes read-side completion views over a goal's
// day-indexed schedule. Everything here is pure: no function mutates the
// goal, so callers may invoke them freely without coordination.
package progress

import (
	"math"

	"github.com/goalwing/goalwing/models"
)

// Summary counts completed versus total tasks for some slice of a goal.
type Summary struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// Percent returns the completion rate as a rounded 0-100 integer.
// Zero-task slices report 0.
func (s Summary) Percent() int {
	if s.Total == 0 {
		return 0
	}
	p := int(math.Round(100 * float64(s.Done) / float64(s.Total)))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Band classifies a percent into the display bands the list and chart
// views color by.
type Band string

const (
	BandLow  Band = "low"  // 0-59
	BandMid  Band = "mid"  // 60-79
	BandHigh Band = "high" // 80-99
	BandDone Band = "done" // 100
)

// BandFor returns the display band for a completion percent.
func BandFor(percent int) Band {
	switch {
	case percent >= 100:
		return BandDone
	case percent >= 80:
		return BandHigh
	case percent >= 60:
		return BandMid
	default:
		return BandLow
	}
}

// DayStat is one entry of a rolling completion series.
type DayStat struct {
	Date                   string `json:"date"`
	Done                   int    `json:"done"`
	Total                  int    `json:"total"`
	CompletionRate         int    `json:"completionRate"`
	CompletedEffortMinutes int    `json:"completedEffortMinutes"`
}

// DayProgress counts completed vs. total tasks on one date. Dates with no
// DayPlan report {0,0}.
func DayProgress(g *models.Goal, date string) Summary {
	day := g.Day(date)
	if day == nil {
		return Summary{}
	}
	return summarize(day.Tasks)
}

// OverallProgress sums completion across every day of the goal.
func OverallProgress(g *models.Goal) Summary {
	var s Summary
	for i := range g.DailyTasks {
		day := summarize(g.DailyTasks[i].Tasks)
		s.Done += day.Done
		s.Total += day.Total
	}
	return s
}

// RecentSeries returns exactly n entries, one per calendar day ending at
// anchorDate. An anchor outside the goal's window is clamped to the
// nearest boundary. Dates with no DayPlan are zero-filled so the series
// stays continuous for display.
func RecentSeries(g *models.Goal, n int, anchorDate string) ([]DayStat, error) {
	if n <= 0 {
		return nil, nil
	}
	anchor, err := models.ParseDate(anchorDate)
	if err != nil {
		return nil, err
	}
	start, err := models.ParseDate(g.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := models.ParseDate(g.EndDate)
	if err != nil {
		return nil, err
	}
	if anchor.After(end) {
		anchor = end
	}
	if anchor.Before(start) {
		anchor = start
	}

	series := make([]DayStat, 0, n)
	for i := n - 1; i >= 0; i-- {
		date := anchor.AddDate(0, 0, -i).Format(models.DateLayout)
		stat := DayStat{Date: date}
		if day := g.Day(date); day != nil {
			sum := summarize(day.Tasks)
			stat.Done = sum.Done
			stat.Total = sum.Total
			stat.CompletionRate = sum.Percent()
			for _, task := range day.Tasks {
				if task.Completed {
					stat.CompletedEffortMinutes += task.Minutes
				}
			}
		}
		series = append(series, stat)
	}
	return series, nil
}

func summarize(tasks []models.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			s.Done++
		}
	}
	return s
}
