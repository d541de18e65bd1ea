package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/goalwing/goalwing/internal/app"
	"github.com/goalwing/goalwing/internal/ui"
	"github.com/goalwing/goalwing/planner"
	"github.com/goalwing/goalwing/types"
)

var (
	newPeriod      int
	newStartDate   string
	newDescription string
	newEdit        bool
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new [goal text]",
	Short: "Create a goal with a generated daily task plan",
	Long: `Create a new goal. The goal text and period are sent to the configured
generation service; when the service is unavailable the built-in stage
template produces the plan instead. The raw plan can be reviewed and edited
with --edit before it is normalized into the daily schedule and saved.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		goalStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to open the goal store.", err)
		}
		defer func() { _ = goalStore.Close() }()

		creator, err := newCreator(goalStore)
		if err != nil {
			HandleFatalError("Failed to configure plan generation.", err)
		}

		startDate := newStartDate
		if startDate == "" {
			startDate = today()
		}

		input := app.CreateGoalInput{
			Title:       strings.Join(args, " "),
			Description: newDescription,
			Period:      newPeriod,
			StartDate:   startDate,
		}

		plan, genErr, err := creator.GeneratePlan(cmd.Context(), input)
		if err != nil {
			HandleFatalError("Could not produce a plan for this goal. Check the goal text, period and start date.", err)
		}
		if genErr != nil {
			fmt.Println(ui.StyleWarning.Render(app.TemplateAdvisory))
			LogError("plan generation fell back to the template", genErr)
		}

		if newEdit && plan.Shape == types.PlanFlat {
			edited, err := editDraft(plan.Flat)
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Goal creation cancelled.")
					return
				}
				HandleFatalError("Plan editing failed.", err)
			}
			plan = types.FlatPlan(edited)
		}

		goal, err := creator.Persist(input, plan)
		if err != nil {
			HandleFatalError("Failed to save the goal.", err)
		}

		fmt.Printf("%s %s\n", ui.StyleSuccess.Render("Goal created:"), ui.StyleTitle.Render(goal.Title))
		fmt.Printf("  %s\n", ui.StyleSubtle.Render(fmt.Sprintf("ID %s, %d days from %s to %s", goal.ID, goal.Period, goal.StartDate, goal.EndDate)))
	},
}

// editDraft runs an interactive review loop over the raw plan before it
// is normalized: toggle keeps nothing (completion starts fresh), but tasks
// can be reworded, removed, or added.
func editDraft(tasks []types.TaskOutput) ([]types.TaskOutput, error) {
	draft := planner.NewDraft(tasks)

	for {
		printDraft(draft)

		prompt := promptui.Select{
			Label: "Edit plan",
			Items: []string{"Accept plan", "Edit a task", "Delete a task", "Add a task", "Cancel"},
		}
		_, choice, err := prompt.Run()
		if err != nil {
			return nil, err
		}

		switch choice {
		case "Accept plan":
			if draft.Len() == 0 {
				fmt.Println(ui.StyleError.Render("The plan needs at least one task."))
				continue
			}
			return draft.TaskOutputs(), nil
		case "Edit a task":
			id, err := promptDraftID(draft, "Task number to edit")
			if err != nil {
				return nil, err
			}
			textPrompt := promptui.Prompt{Label: "New text"}
			text, err := textPrompt.Run()
			if err != nil {
				return nil, err
			}
			if err := draft.Edit(id, text); err != nil {
				fmt.Println(ui.StyleError.Render(err.Error()))
			}
		case "Delete a task":
			id, err := promptDraftID(draft, "Task number to delete")
			if err != nil {
				return nil, err
			}
			if !draft.Delete(id) {
				fmt.Println(ui.StyleError.Render("No task with that number."))
			}
		case "Add a task":
			textPrompt := promptui.Prompt{Label: "Task text"}
			text, err := textPrompt.Run()
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(text) != "" {
				draft.Add(text)
			}
		case "Cancel":
			return nil, promptui.ErrInterrupt
		}
	}
}

func printDraft(draft *planner.Draft) {
	fmt.Println(ui.StyleSectionTitle.Render("Plan draft"))
	for _, task := range draft.Tasks() {
		label := fmt.Sprintf("%2d. %s", task.ID, task.Text)
		if task.StageName != "" {
			label += ui.StyleSubtle.Render(fmt.Sprintf("  [%s, days %s]", task.StageName, task.DayRange))
		}
		fmt.Println(label)
	}
}

func promptDraftID(draft *planner.Draft, label string) (int, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			n, err := strconv.Atoi(strings.TrimSpace(input))
			if err != nil {
				return fmt.Errorf("enter a task number")
			}
			for _, task := range draft.Tasks() {
				if task.ID == n {
					return nil
				}
			}
			return fmt.Errorf("no task numbered %d", n)
		},
	}
	raw, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().IntVarP(&newPeriod, "period", "p", 30, "length of the goal in days")
	newCmd.Flags().StringVarP(&newStartDate, "start", "s", "", "start date (YYYY-MM-DD, default today)")
	newCmd.Flags().StringVarP(&newDescription, "describe", "d", "", "optional goal description")
	newCmd.Flags().BoolVarP(&newEdit, "edit", "e", false, "review and edit the raw plan before saving")
}
