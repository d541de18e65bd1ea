package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goalwing/goalwing/internal/ui"
	"github.com/goalwing/goalwing/progress"
)

var todayDate string

// todayCmd represents the today command
var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show every goal's tasks for one day",
	Long:  `Show the tasks scheduled for a single day across all goals. Defaults to the current date; use --date for another day.`,
	Run: func(cmd *cobra.Command, args []string) {
		goalStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to open the goal store.", err)
		}
		defer func() { _ = goalStore.Close() }()

		goals, err := goalStore.ListGoals()
		if err != nil {
			HandleFatalError("Failed to list goals.", err)
		}

		date := todayDate
		if date == "" {
			date = today()
		}

		fmt.Println(ui.StyleHeader.Render("Tasks for " + date))

		shown := 0
		for _, goal := range goals {
			day := goal.Day(date)
			if day == nil || len(day.Tasks) == 0 {
				continue
			}
			shown++

			summary := progress.DayProgress(&goal, date)
			fmt.Printf("%s  %s\n", ui.StyleTitle.Render(goal.Title),
				ui.StyleSubtle.Render(fmt.Sprintf("%d/%d done", summary.Done, summary.Total)))
			for _, task := range day.Tasks {
				mark := "[ ]"
				style := ui.StyleText
				if task.Completed {
					mark = "[x]"
					style = ui.StyleSuccess
				}
				fmt.Printf("  %s %s %s\n", style.Render(mark), style.Render(task.Title),
					ui.StyleSubtle.Render(fmt.Sprintf("(%d min)", task.Minutes)))
			}
		}

		if shown == 0 {
			fmt.Println(ui.StyleSubtle.Render("No tasks scheduled for this date."))
		}
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)

	todayCmd.Flags().StringVarP(&todayDate, "date", "d", "", "date to show (YYYY-MM-DD, default today)")
}
