package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goalwing/goalwing/internal/ui"
	"github.com/goalwing/goalwing/progress"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all goals with their overall progress",
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

		if len(goals) == 0 {
			fmt.Println(ui.StyleSubtle.Render("No goals yet. Create one with 'goalwing new'."))
			return
		}

		fmt.Println(ui.StyleHeader.Render(fmt.Sprintf("Goals (%d)", len(goals))))
		for _, goal := range goals {
			overall := progress.OverallProgress(&goal)
			fmt.Printf("%s  %s\n", ui.ProgressBar(overall), ui.StyleTitle.Render(goal.Title))
			fmt.Printf("    %s\n", ui.StyleSubtle.Render(fmt.Sprintf("ID %s · %d days · %s to %s", goal.ID, goal.Period, goal.StartDate, goal.EndDate)))
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
