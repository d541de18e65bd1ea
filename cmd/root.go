package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goalwing/goalwing/internal/app"
	"github.com/goalwing/goalwing/internal/retry"
	"github.com/goalwing/goalwing/llm"
	"github.com/goalwing/goalwing/models"
	"github.com/goalwing/goalwing/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// ErrNoGoalsFound is returned when an interactive selection is attempted but no goals are available.
	ErrNoGoalsFound = errors.New("no goals found matching your criteria")
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "goalwing",
	Short: "GoalWing turns a goal into a day-by-day task plan and tracks it.",
	Long: `GoalWing CLI takes a personal goal and a period in days, generates a
daily task plan for it, and tracks per-day completion until the goal is done.
Plans come from a remote generation service when one is configured, with a
built-in stage template as fallback.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.goalwing.yaml or ./.goalwing.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetGoalFilePath returns the full path to the goals file
func GetGoalFilePath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Project.GoalsDir, config.Data.File)
}

// GetStore initializes and returns the goal store using the unified types.AppConfig.
func GetStore() (store.GoalStore, error) {
	s := store.NewFileGoalStore()
	config := GetConfig()

	goalFilePath := GetGoalFilePath()

	err := s.Initialize(map[string]string{
		"dataFile":       goalFilePath,
		"dataFileFormat": config.Data.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", goalFilePath, err)
	}
	return s, nil
}

// newCreator wires the create-goal flow from the active configuration.
// When no generator base URL is configured the flow runs on the local
// template only.
func newCreator(goalStore store.GoalStore) (*app.Creator, error) {
	config := GetConfig()

	creator := &app.Creator{
		Store: goalStore,
		Retry: retry.Policy{
			MaxAttempts: config.Generator.MaxRetries,
			BaseDelay:   time.Duration(config.Generator.BaseDelayMillis) * time.Millisecond,
		},
	}

	if config.Generator.BaseURL != "" {
		client, err := llm.NewHTTPPlanClient(llm.Config{
			BaseURL: config.Generator.BaseURL,
			Timeout: time.Duration(config.Generator.RequestTimeoutSeconds) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build generation client: %w", err)
		}
		creator.Generator = client
	}

	return creator, nil
}

// today returns the current date in the schedule's calendar format.
func today() string {
	return time.Now().Format(models.DateLayout)
}

// selectGoalInteractive presents a prompt to the user to select a goal from the list.
func selectGoalInteractive(goalStore store.GoalStore, label string) (models.Goal, error) {
	goals, err := goalStore.ListGoals()
	if err != nil {
		return models.Goal{}, fmt.Errorf("failed to list goals for selection: %w", err)
	}

	if len(goals) == 0 {
		return models.Goal{}, ErrNoGoalsFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Title | cyan }} ({{ .StartDate }} to {{ .EndDate }})`,
		Inactive: `  {{ .Title | faint }} ({{ .StartDate }} to {{ .EndDate }})`,
		Selected: `{{ "✔" | green }} {{ .Title | faint }} (ID: {{ .ID }})`,
		Details: `
--------- Goal Details ----------
{{ "ID:\t" | faint }} {{ .ID }}
{{ "Title:\t" | faint }} {{ .Title }}
{{ "Period:\t" | faint }} {{ .Period }} days
{{ "Start:\t" | faint }} {{ .StartDate }}
{{ "End:\t" | faint }} {{ .EndDate }}`,
	}

	searcher := func(input string, index int) bool {
		goal := goals[index]
		name := strings.ToLower(goal.Title)
		id := goal.ID
		input = strings.ToLower(input)
		return strings.Contains(name, input) || strings.Contains(id, input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     goals,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Goal{}, err // Return error as is (includes promptui.ErrInterrupt)
	}

	return goals[i], nil
}

// resolveGoal looks up a goal by the optional positional argument or falls
// back to interactive selection.
func resolveGoal(goalStore store.GoalStore, args []string, label string) (models.Goal, error) {
	if len(args) > 0 {
		return goalStore.GetGoal(args[0])
	}
	return selectGoalInteractive(goalStore, label)
}
