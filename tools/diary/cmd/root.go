package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/perpetuallyhorni/diary/pkg/board"
	"github.com/perpetuallyhorni/diary/pkg/storage"
	"github.com/perpetuallyhorni/diary/tools/diary/internal/cli"
	cliconfig "github.com/perpetuallyhorni/diary/tools/diary/internal/config"
	"github.com/perpetuallyhorni/diary/tools/diary/internal/update"
	"github.com/spf13/cobra"
)

var (
	// cfg stores the application configuration.
	cfg *cliconfig.Config
	// diaryBoard is the board all commands operate on.
	diaryBoard *board.Board
	// store is the durable slot backend behind the board.
	store storage.Storer
	// console is the CLI console for notices.
	console *cli.Console
	// fileLogger is the logger for writing logs to a file.
	fileLogger *log.Logger
	// flagConfigPath is the path to the config file.
	flagConfigPath string
	// flagQuiet enables or disables quiet mode.
	flagQuiet bool
	// version is set at build time.
	version string
)

// SetVersion sets the version of the application.
func SetVersion(v string) {
	version = v
	if rootCmd != nil {
		rootCmd.Version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "diary",
	Short: "A single-board diary with posts, likes and comments.",
	Long: `A single-board diary with posts, likes and comments, stored locally.

Run 'diary' to show the board, or 'diary shell' for an interactive session.
For example:
  diary like 1700000000000
  diary comment 1700000000000 "nice one"
  diary post add -u admin -p password "Dear diary..."`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isLightweight(cmd) {
			return nil
		}

		cleanLogs, _ := cmd.Flags().GetBool("clean-logs")
		var err error
		fileLogger, err = setupFileLogger(cleanLogs, cfg)
		if err != nil {
			return fmt.Errorf("failed to set up file logger: %w", err)
		}
		// If debug is enabled, write to both file and stderr.
		if val, _ := cmd.Flags().GetBool("debug"); val {
			fileLogger.SetOutput(io.MultiWriter(fileLogger.Writer(), os.Stderr))
		}

		ephemeral, _ := cmd.Flags().GetBool("ephemeral")
		store, err = openStore(cfg, ephemeral)
		if err != nil {
			return fmt.Errorf("error opening storage: %w", err)
		}

		diaryBoard, err = board.New(&cfg.Config, store, fileLogger)
		if err != nil {
			return fmt.Errorf("error loading board: %w", err)
		}

		if cfg.CheckForUpdates {
			checkForUpdate()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// isLightweight reports whether cmd runs without opening the board. Only the
// top-level command counts, so "post edit" is not mistaken for "edit".
func isLightweight(cmd *cobra.Command) bool {
	top := cmd
	for top.HasParent() && top.Parent().HasParent() {
		top = top.Parent()
	}
	switch top.Name() {
	case "completion", "edit", "update", "help":
		return true
	}
	return false
}

// checkForUpdate warns about, or installs, a newer release.
func checkForUpdate() {
	latestVersion, err := update.CheckForUpdate(version)
	if err != nil {
		// Non-fatal, just warn the user.
		console.Warn("Update check failed: %v", err)
		return
	}
	if latestVersion == "" {
		return
	}
	if cfg.AutoUpdate {
		console.Info("New version available (%s). Auto-updating...", latestVersion)
		if err := update.ApplyUpdate(console, version); err != nil {
			console.Error("Auto-update failed: %v", err)
		}
		return
	}
	console.Warn("A new version of diary is available: %s. Run 'diary update' to upgrade.", console.Bold.Sprint(latestVersion))
}

// init initializes the command line interface.
func init() {
	console = cli.New(false)

	cobra.OnInitialize(func() {
		if val, err := rootCmd.Flags().GetBool("quiet"); err == nil && val {
			flagQuiet = true
			console = cli.New(true)
		}

		var err error
		if val, err := rootCmd.Flags().GetString("config"); err == nil {
			flagConfigPath = val
		}

		cfg, err = cliconfig.Load(flagConfigPath)
		if err != nil {
			console.Error("Error loading config: %v", err)
			os.Exit(1)
		}

		applyFlagOverrides(rootCmd, cfg)
		if err := cfg.Validate(); err != nil {
			console.Error("Invalid flags: %v", err)
			os.Exit(1)
		}
	})

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVarP(&flagConfigPath, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Quiet mode, no console output except for errors")
	rootCmd.PersistentFlags().Bool("debug", false, "Log debug info to stderr and log file")
	rootCmd.PersistentFlags().Bool("clean-logs", false, "Redact the admin password and data paths from log files")

	// Storage flags
	rootCmd.PersistentFlags().String("storage", "", `Storage backend ("sqlite", "dir"). Overrides config.`)
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite database (overrides config)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for the \"dir\" storage (overrides config)")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "Keep the board in memory only; nothing is saved")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(updateCmd)
}

// Execute executes the root command. The store is closed afterwards even
// when a hook or the command itself failed.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeStore(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// closeStore closes the store opened for this run, if any.
func closeStore() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	if err != nil {
		return fmt.Errorf("error closing storage: %w", err)
	}
	return nil
}
