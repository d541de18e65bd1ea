package progress

import (
	"testing"
	"time"

	"github.com/goalwing/goalwing/models"
)

func sampleGoal(t *testing.T) *models.Goal {
	t.Helper()

	g := &models.Goal{
		ID:        "0b8f4a15-6f0e-4c7d-9a2b-3c4d5e6f7a8b",
		Title:     "Learn Go",
		Period:    3,
		StartDate: "2025-01-01",
		EndDate:   "2025-01-03",
		DailyTasks: []models.DayPlan{
			{Date: "2025-01-01", Tasks: []models.Task{
				{ID: "a", Title: "Read", Minutes: 30, Completed: true},
				{ID: "b", Title: "Practice", Minutes: 45, Completed: true},
				{ID: "c", Title: "Review", Minutes: 30},
			}},
			{Date: "2025-01-02", Tasks: []models.Task{
				{ID: "a", Title: "Read", Minutes: 30, Completed: true},
				{ID: "b", Title: "Practice", Minutes: 30},
				{ID: "c", Title: "Review", Minutes: 30},
			}},
			{Date: "2025-01-03", Tasks: []models.Task{
				{ID: "a", Title: "Read", Minutes: 30},
				{ID: "b", Title: "Practice", Minutes: 30},
				{ID: "c", Title: "Review", Minutes: 30},
			}},
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("sample goal invalid: %v", err)
	}
	return g
}

func TestDayProgress(t *testing.T) {
	g := sampleGoal(t)

	got := DayProgress(g, "2025-01-01")
	if got.Done != 2 || got.Total != 3 {
		t.Errorf("day 1: got %+v, want {2 3}", got)
	}

	// Unknown dates report zero, never an error.
	if got := DayProgress(g, "2024-12-25"); got.Done != 0 || got.Total != 0 {
		t.Errorf("unknown date: got %+v, want {0 0}", got)
	}
}

func TestOverallProgress_MatchesDaySum(t *testing.T) {
	g := sampleGoal(t)

	overall := OverallProgress(g)
	var doneSum, totalSum int
	for _, day := range g.DailyTasks {
		s := DayProgress(g, day.Date)
		doneSum += s.Done
		totalSum += s.Total
	}

	if overall.Done != doneSum || overall.Total != totalSum {
		t.Errorf("overall %+v disagrees with per-day sum {%d %d}", overall, doneSum, totalSum)
	}
	if overall.Done != 3 || overall.Total != 9 {
		t.Errorf("overall: got %+v, want {3 9}", overall)
	}
}

func TestSummaryPercent(t *testing.T) {
	cases := []struct {
		s    Summary
		want int
	}{
		{Summary{0, 0}, 0},
		{Summary{1, 3}, 33},
		{Summary{2, 3}, 67}, // rounds, not truncates
		{Summary{3, 3}, 100},
	}
	for _, tc := range cases {
		if got := tc.s.Percent(); got != tc.want {
			t.Errorf("Percent(%+v) = %d, want %d", tc.s, got, tc.want)
		}
	}
}

func TestBandFor(t *testing.T) {
	cases := map[int]Band{0: BandLow, 59: BandLow, 60: BandMid, 79: BandMid, 80: BandHigh, 99: BandHigh, 100: BandDone}
	for percent, want := range cases {
		if got := BandFor(percent); got != want {
			t.Errorf("BandFor(%d) = %s, want %s", percent, got, want)
		}
	}
}

func TestRecentSeries_ExactLengthAndZeroFill(t *testing.T) {
	g := sampleGoal(t)

	series, err := RecentSeries(g, 5, "2025-01-03")
	if err != nil {
		t.Fatalf("RecentSeries failed: %v", err)
	}
	if len(series) != 5 {
		t.Fatalf("got %d entries, want 5", len(series))
	}

	// First two entries fall before the goal's window: zero-filled.
	if series[0].Date != "2024-12-30" || series[0].Total != 0 {
		t.Errorf("entry 0: %+v, want zero-filled 2024-12-30", series[0])
	}
	if series[4].Date != "2025-01-03" || series[4].Total != 3 {
		t.Errorf("entry 4: %+v, want 2025-01-03 with 3 tasks", series[4])
	}
}

func TestRecentSeries_ClampsAnchor(t *testing.T) {
	g := sampleGoal(t)

	// Anchor after the window clamps to endDate.
	series, err := RecentSeries(g, 3, "2025-02-15")
	if err != nil {
		t.Fatalf("RecentSeries failed: %v", err)
	}
	if series[len(series)-1].Date != "2025-01-03" {
		t.Errorf("late anchor should clamp to endDate, last entry %+v", series[len(series)-1])
	}

	// Anchor before the window clamps to startDate.
	series, err = RecentSeries(g, 2, "2024-11-01")
	if err != nil {
		t.Fatalf("RecentSeries failed: %v", err)
	}
	if series[len(series)-1].Date != "2025-01-01" {
		t.Errorf("early anchor should clamp to startDate, last entry %+v", series[len(series)-1])
	}
}

func TestRecentSeries_RatesAndEffort(t *testing.T) {
	g := sampleGoal(t)

	series, err := RecentSeries(g, 3, "2025-01-03")
	if err != nil {
		t.Fatalf("RecentSeries failed: %v", err)
	}

	day1 := series[0]
	if day1.CompletionRate != 67 {
		t.Errorf("day 1 rate: got %d, want 67", day1.CompletionRate)
	}
	if day1.CompletedEffortMinutes != 75 {
		t.Errorf("day 1 effort: got %d, want 75 (30+45 completed minutes)", day1.CompletedEffortMinutes)
	}

	day3 := series[2]
	if day3.CompletionRate != 0 || day3.CompletedEffortMinutes != 0 {
		t.Errorf("day 3 should have no completions: %+v", day3)
	}
}

func TestRecentSeries_Rejections(t *testing.T) {
	g := sampleGoal(t)

	if series, err := RecentSeries(g, 0, "2025-01-01"); err != nil || series != nil {
		t.Errorf("n=0 should return an empty series, got %v / %v", series, err)
	}
	if _, err := RecentSeries(g, 3, "bogus"); err == nil {
		t.Error("malformed anchor date should error")
	}
}
