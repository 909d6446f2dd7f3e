package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tally/internal/config"
	"github.com/balkashynov/tally/internal/dates"
	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/ids"
	"github.com/balkashynov/tally/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// skipStore marks commands that run without opening the database
const skipStore = "skip-store"

// app is the state shared by every command of one invocation
type app struct {
	cfg   config.Config
	store *db.Store
	clock dates.Clock

	// set when the store was opened by this invocation and must be closed
	ownsStore bool
}

func (a *app) now() time.Time {
	return a.clock.Now()
}

// newRootCmd builds the command tree. A store already present on a is used
// as is; otherwise one is opened from config before each command runs.
func newRootCmd(a *app) *cobra.Command {
	if a.clock == nil {
		a.clock = dates.SystemClock{}
	}

	rootCmd := &cobra.Command{
		Use:   "tally",
		Short: "A terminal tracker for tasks, notes, habits and workouts",
		Long: `tally keeps your tasks, notes, habits and workouts in one local database.
Mark habits day by day, watch your streaks grow, and log workouts from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().String("db", "", "Database file (default $TALLY_DB or ~/.tally/tally.db)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("id-format", "", "Identifier format for new records: uuid or nanoid")

	rootCmd.AddCommand(
		newTaskCmd(a),
		newNoteCmd(a),
		newHabitCmd(a),
		newWorkoutCmd(a),
		newStatsCmd(a),
		newVersionCmd(),
	)
	rootCmd.SetHelpCommand(newHelpCmd())

	return rootCmd
}

// setup loads configuration, starts logging and opens the store
func (a *app) setup(cmd *cobra.Command) error {
	a.cfg = config.Load()
	flags := cmd.Flags()
	if flags.Changed("db") {
		a.cfg.DBPath, _ = flags.GetString("db")
	}
	if flags.Changed("debug") {
		a.cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("id-format") {
		a.cfg.IDFormat, _ = flags.GetString("id-format")
	}

	if a.store != nil || cmd.Annotations[skipStore] == "true" {
		return nil
	}

	if err := logger.Init(logger.Config{Debug: a.cfg.Debug, DataDir: a.cfg.DataDir}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	gen, err := ids.ForFormat(a.cfg.IDFormat)
	if err != nil {
		return err
	}

	store, err := db.Open(a.cfg.DBPath,
		db.WithIDGenerator(gen),
		db.WithClock(a.clock),
		db.WithQueryLogging(a.cfg.Debug),
	)
	if err != nil {
		return err
	}
	a.store = store
	a.ownsStore = true
	logger.Debug("Command starting", "command", cmd.CommandPath(), "db", a.cfg.DBPath)
	return nil
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	a := &app{}
	err := newRootCmd(a).ExecuteContext(context.Background())
	if a.ownsStore {
		if closeErr := a.store.Close(); closeErr != nil {
			logger.Warn("Failed to close database", "error", closeErr)
		}
	}
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipStore: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tally %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
