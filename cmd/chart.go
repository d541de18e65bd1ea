package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/goalwing/goalwing/internal/ui"
	"github.com/goalwing/goalwing/progress"
)

var (
	chartDays   int
	chartAnchor string
)

// chartCmd represents the chart command
var chartCmd = &cobra.Command{
	Use:   "chart [goal_id]",
	Short: "Show a goal's recent day-by-day completion",
	Long: `Show a rolling completion chart for the last N days of a goal's schedule,
ending at the anchor date (default today, clamped to the goal's window).`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		goalStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to open the goal store.", err)
		}
		defer func() { _ = goalStore.Close() }()

		goal, err := resolveGoal(goalStore, args, "Select goal to chart")
		if err != nil {
			if err == promptui.ErrInterrupt {
				return
			}
			if err == ErrNoGoalsFound {
				fmt.Println("No goals available.")
				return
			}
			HandleFatalError("Failed to find that goal.", err)
		}

		anchor := chartAnchor
		if anchor == "" {
			anchor = today()
		}

		series, err := progress.RecentSeries(&goal, chartDays, anchor)
		if err != nil {
			HandleFatalError("Could not build the chart. Check the anchor date.", err)
		}

		fmt.Println(ui.StyleHeader.Render(goal.Title))
		for _, stat := range series {
			fmt.Println(ui.DayBar(stat))
		}

		overall := progress.OverallProgress(&goal)
		fmt.Printf("\n%s  %s\n", ui.ProgressBar(overall), ui.StyleSubtle.Render("overall"))
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().IntVarP(&chartDays, "days", "n", 7, "number of days to chart")
	chartCmd.Flags().StringVarP(&chartAnchor, "anchor", "a", "", "last date of the chart (YYYY-MM-DD, default today)")
}
