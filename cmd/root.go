/*
Copyright © 2025 Halcyon Authors
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/halcyonhq/halcyon/internal/happiness"
	"github.com/halcyonhq/halcyon/internal/logger"
	"github.com/halcyonhq/halcyon/models"
	"github.com/halcyonhq/halcyon/store"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// jsonOut switches command output to JSON.
	jsonOut bool
	// ErrNoTasksFound is returned when an interactive selection is attempted but no tasks are available.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
	// version is the application version.
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "halcyon",
	Short: "Halcyon schedules your tasks around your mood and energy.",
	Long: `Halcyon is a mood-aware task scheduler for the command line.
Record how you feel through the day and it learns when you do your best
work, ranks your pending tasks accordingly, and tells you what to do now.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVersion(version)
		logger.SetCommand(cmd.CommandPath())
		logger.SetBasePath(GetConfig().Project.RootDir)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// return help if no args are provided
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}

		// otherwise, run the subcommand
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

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.halcyon.yaml or ./.halcyon.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output JSON instead of tables")

	// Bind persistent flags to Viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// GetTaskFilePath returns the full path to the tasks file
func GetTaskFilePath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Data.File)
}

// GetHistoryFilePath returns the full path to the mood/performance history file.
func GetHistoryFilePath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Data.HistoryFile)
}

// GetStore initializes and returns the task store using the unified types.AppConfig.
func GetStore() (store.TaskStore, error) {
	s := store.NewFileTaskStore()
	config := GetConfig()

	taskFilePath := GetTaskFilePath()

	err := s.Initialize(map[string]string{
		"dataFile":       taskFilePath,
		"dataFileFormat": config.Data.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", taskFilePath, err)
	}
	return s, nil
}

// GetHistoryStore returns the configured history backend.
func GetHistoryStore() (store.HistoryStore, error) {
	config := GetConfig()
	if err := os.MkdirAll(config.Project.RootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", config.Project.RootDir, err)
	}

	switch config.Data.Backend {
	case "sqlite":
		path := GetHistoryFilePath()
		if !strings.HasSuffix(path, ".db") {
			path = strings.TrimSuffix(path, filepath.Ext(path)) + ".db"
		}
		return store.NewSQLiteHistoryStore(path)
	default:
		return store.NewFileHistoryStore(GetHistoryFilePath(), config.Data.Format)
	}
}

// newEngine wires the history store and configured preferences into an engine.
// Callers must Close the returned store.
func newEngine() (*happiness.Engine, store.HistoryStore, error) {
	hs, err := GetHistoryStore()
	if err != nil {
		return nil, nil, err
	}
	prefs := GetConfig().Prefs
	engine := happiness.New(hs, happiness.WithPreferences(happiness.Preferences{
		WakeHour:  prefs.WakeHour,
		BedHour:   prefs.BedHour,
		WorkStart: prefs.WorkStart,
		WorkEnd:   prefs.WorkEnd,
	}))
	return engine, hs, nil
}

// selectTaskInteractive presents a prompt to the user to select a task from a list.
// It can be filtered using the provided filter function.
func selectTaskInteractive(taskStore store.TaskStore, filterFn func(models.Task) bool, label string) (models.Task, error) {
	tasks, err := taskStore.ListTasks(filterFn)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to list tasks for selection: %w", err)
	}

	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Title | cyan }} (ID: {{ .ID }}, Type: {{ .Type }})`,
		Inactive: `  {{ .Title | faint }} (ID: {{ .ID }}, Type: {{ .Type }})`,
		Selected: `{{ "✔" | green }} {{ .Title | faint }} (ID: {{ .ID }})`,
		Details: `
--------- Task Details ----------
{{ "ID:\t" | faint }} {{ .ID }}
{{ "Title:\t" | faint }} {{ .Title }}
{{ "Type:\t" | faint }} {{ .Type }}
{{ "Priority:\t" | faint }} {{ .Priority }}`,
	}

	searcher := func(input string, index int) bool {
		task := tasks[index]
		name := strings.ToLower(task.Title)
		id := task.ID
		input = strings.ToLower(input)
		return strings.Contains(name, input) || strings.Contains(id, input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, err // Return error as is (includes promptui.ErrInterrupt)
	}

	return tasks[i], nil
}

// parseDeadline accepts either a full RFC3339 timestamp or a date-only value.
func parseDeadline(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local); err == nil {
		return &t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		// Treat bare dates as end-of-day so same-day deadlines stay urgent, not overdue.
		eod := t.Add(23*time.Hour + 59*time.Minute)
		return &eod, nil
	}
	return nil, fmt.Errorf("unrecognized deadline %q (want RFC3339, \"2006-01-02 15:04\" or \"2006-01-02\")", value)
}
