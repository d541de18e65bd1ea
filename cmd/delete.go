package cmd

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete [goal_id]",
	Short: "Delete a goal",
	Long:  `Delete a goal and its whole schedule by ID. If no ID is provided, an interactive list is shown. A confirmation prompt is always displayed before deletion.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		goalStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to open the goal store.", err)
		}
		defer func() { _ = goalStore.Close() }()

		goal, err := resolveGoal(goalStore, args, "Select goal to delete")
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Deletion cancelled.")
				return
			}
			if err == ErrNoGoalsFound {
				fmt.Println("No goals available to delete.")
				return
			}
			HandleFatalError("Failed to find that goal.", err)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Are you sure you want to delete goal '%s' (ID: %s)?", goal.Title, goal.ID),
			IsConfirm: true,
		}
		_, err = confirmPrompt.Run()
		if err != nil {
			// Handles both 'no' (promptui.ErrAbort) and actual errors
			if err == promptui.ErrAbort {
				fmt.Println("Deletion cancelled.")
			} else {
				fmt.Fprintf(os.Stderr, "Confirmation prompt failed: %v\n", err)
			}
			return
		}

		if err := goalStore.DeleteGoal(goal.ID); err != nil {
			HandleFatalError("Failed to delete the goal.", err)
		}

		fmt.Printf("Goal %s deleted.\n", goal.ID)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
