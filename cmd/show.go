package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/goalwing/goalwing/internal/ui"
	"github.com/goalwing/goalwing/progress"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [goal_id]",
	Short: "Show a goal's full daily schedule",
	Long:  `Show the complete day-by-day schedule for a goal. If no ID is provided, an interactive list is shown.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		goalStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to open the goal store.", err)
		}
		defer func() { _ = goalStore.Close() }()

		goal, err := resolveGoal(goalStore, args, "Select goal to show")
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

		overall := progress.OverallProgress(&goal)
		fmt.Println(ui.StyleHeader.Render(goal.Title))
		if goal.Description != "" {
			fmt.Println(ui.StyleSubtle.Render(goal.Description))
		}
		fmt.Printf("%s  %s\n\n", ui.ProgressBar(overall),
			ui.StyleSubtle.Render(fmt.Sprintf("%d of %d tasks done", overall.Done, overall.Total)))

		currentDate := today()
		for _, day := range goal.DailyTasks {
			date := day.Date
			if date == currentDate {
				fmt.Println(ui.StylePrimary.Render(date + "  (today)"))
			} else {
				fmt.Println(ui.StyleTitle.Render(date))
			}
			if len(day.Tasks) == 0 {
				fmt.Println(ui.StyleSubtle.Render("  rest day"))
				continue
			}
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
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
