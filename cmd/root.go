package cmd

import (
	"errors"
	"fmt"
	"os"

	"sift/internal/db"
	"sift/internal/logging"
	"sift/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var flags flagValues

var rootCmd = &cobra.Command{
	Use:   "sift [table]",
	Short: "Browse, filter and sort the tables of a SQLite database",
	Long: `sift opens a SQLite database read-only and shows its tables in the terminal.
Tables can be filtered per column and searched globally, sorted on one or
more columns, and reset to the order their rows were loaded in.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, file, err := resolveConfig(flags)
		if err != nil {
			return err
		}

		if shouldRunSetup(config, file) {
			file, err = runSetup(config.ConfigDir, file)
			if err != nil {
				return fmt.Errorf("failed to run setup: %w", err)
			}
			if err := applySetup(config, file, flags); err != nil {
				return err
			}
		}
		if config.DBPath == "" {
			return errors.New("no database given: pass --db, set SIFT_DB or run setup")
		}

		logger, closer, err := logging.New(config.LogFile, config.LogLevel)
		if err != nil {
			return err
		}
		defer closer.Close()

		database, err := db.Open(config.DBPath)
		if err != nil {
			return err
		}
		defer database.Close()

		logger.Info().Str("db", config.DBPath).Str("search", string(config.SearchMode)).Msg("starting")

		var table string
		if len(args) == 1 {
			table = args[0]
		}
		p := tea.NewProgram(ui.New(database, ui.Options{
			ConfigDir:    config.ConfigDir,
			SearchMode:   config.SearchMode,
			RowLimit:     config.RowLimit,
			InitialTable: table,
			Logger:       logger,
		}), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running app: %w", err)
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.dbPath, "db", "", "Path to SQLite database file (or set SIFT_DB)")
	pf.StringVar(&flags.configDir, "config-dir", "", "Directory for config, preferences and logs (default: ~/.sift)")
	pf.StringVar(&flags.logFile, "log-file", "", "Log file (default: <config-dir>/sift.log)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.searchMode, "search-mode", "", "Global search mode: smart or fuzzy")
	pf.IntVar(&flags.rowLimit, "limit", 0, "Maximum rows loaded per table")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
}

// Execute runs the root command.
func Execute(version string) error {
	// Load .env files first so env-based defaults work with flag parsing.
	loadDotEnv(".env")
	loadDotEnv(".env.local")

	rootCmd.Version = version
	return rootCmd.Execute()
}

func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
