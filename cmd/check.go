package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/goalwing/goalwing/internal/ui"
	"github.com/goalwing/goalwing/models"
	"github.com/goalwing/goalwing/progress"
)

var checkDate string

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [goal_id] [task_id]",
	Short: "Toggle a task's completion for a day",
	Long: `Toggle the completion state of one task on one day of a goal's schedule.
With no arguments the goal and task are picked interactively. Checking a
completed task marks it incomplete again.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		goalStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to open the goal store.", err)
		}
		defer func() { _ = goalStore.Close() }()

		date := checkDate
		if date == "" {
			date = today()
		}

		goal, err := resolveGoal(goalStore, args, "Select goal")
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

		var taskID string
		if len(args) > 1 {
			taskID = args[1]
		} else {
			taskID, err = selectTaskForDay(&goal, date)
			if err != nil {
				if err == promptui.ErrInterrupt {
					return
				}
				PrintError(err.Error(), err)
				return
			}
		}

		updated, err := goalStore.ToggleTask(goal.ID, date, taskID)
		if err != nil {
			HandleFatalError("Failed to toggle the task.", err)
		}

		day := updated.Day(date)
		if day != nil {
			for _, task := range day.Tasks {
				if task.ID != taskID {
					continue
				}
				if task.Completed {
					fmt.Printf("%s %s\n", ui.StyleSuccess.Render("Done:"), task.Title)
				} else {
					fmt.Printf("%s %s\n", ui.StyleWarning.Render("Reopened:"), task.Title)
				}
			}
		}

		summary := progress.DayProgress(&updated, date)
		fmt.Printf("%s  %s\n", ui.ProgressBar(summary), ui.StyleSubtle.Render(date))
	},
}

// selectTaskForDay prompts for one of the goal's tasks on the given date.
func selectTaskForDay(goal *models.Goal, date string) (string, error) {
	day := goal.Day(date)
	if day == nil || len(day.Tasks) == 0 {
		return "", fmt.Errorf("no tasks scheduled on %s for %q", date, goal.Title)
	}

	labels := make([]string, 0, len(day.Tasks))
	for _, task := range day.Tasks {
		mark := "[ ]"
		if task.Completed {
			mark = "[x]"
		}
		labels = append(labels, fmt.Sprintf("%s %s", mark, task.Title))
	}

	prompt := promptui.Select{
		Label: fmt.Sprintf("Toggle task on %s", date),
		Items: labels,
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return day.Tasks[i].ID, nil
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkDate, "date", "d", "", "date of the task (YYYY-MM-DD, default today)")
}
