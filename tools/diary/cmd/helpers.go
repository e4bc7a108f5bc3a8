package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/perpetuallyhorni/diary/pkg/logging"
	"github.com/perpetuallyhorni/diary/pkg/storage"
	"github.com/perpetuallyhorni/diary/pkg/storage/dirstore"
	"github.com/perpetuallyhorni/diary/pkg/storage/memory"
	"github.com/perpetuallyhorni/diary/pkg/storage/sqlite"
	cliconfig "github.com/perpetuallyhorni/diary/tools/diary/internal/config"
	"github.com/spf13/cobra"
)

// applyFlagOverrides applies command-line flag overrides to the configuration.
func applyFlagOverrides(cmd *cobra.Command, cfg *cliconfig.Config) {
	if cmd.Flag("storage").Changed {
		cfg.Storage, _ = cmd.Flags().GetString("storage")
	}
	if cmd.Flag("db").Changed {
		cfg.DatabasePath, _ = cmd.Flags().GetString("db")
	}
	if cmd.Flag("data-dir").Changed {
		cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
	}
}

// openStore opens the slot backend selected by the configuration.
func openStore(cfg *cliconfig.Config, ephemeral bool) (storage.Storer, error) {
	if ephemeral {
		return memory.NewStorage(), nil
	}
	switch cfg.Storage {
	case cliconfig.StorageDir:
		s, err := dirstore.New(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case cliconfig.StorageSQLite:
		db, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

// setupFileLogger sets up a file logger to log board events.
func setupFileLogger(clean bool, cfg *cliconfig.Config) (*log.Logger, error) {
	logPath, err := xdg.StateFile(filepath.Join(cliconfig.AppName, "app.log"))
	if err != nil {
		return nil, fmt.Errorf("could not get log file path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0750); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640) // #nosec G304 G302
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}

	var writer io.Writer = f
	if clean {
		dataPath := filepath.Dir(cfg.DatabasePath)
		if cfg.Storage == cliconfig.StorageDir {
			dataPath = cfg.DataDir
		}
		writer = logging.NewRedactingWriter(f, dataPath, []string{cfg.Admin.Password})
	}

	return log.New(writer, "", log.LstdFlags), nil
}

// parsePostID parses a post id argument, accepting an optional leading '#'.
func parsePostID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(arg), "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q", arg)
	}
	return id, nil
}

// ErrReported marks a failure that was already shown to the user as a notice.
var ErrReported = errors.New("reported")

// rejected shows rejected actions as a notice. The command still fails, but
// main does not print the error a second time.
func rejected(err error) error {
	if err != nil && console.Notice(err) {
		return fmt.Errorf("%w: %w", ErrReported, err)
	}
	return err
}

// loginFromFlags logs the admin in with the --username/--password flags.
func loginFromFlags(cmd *cobra.Command) error {
	username, _ := cmd.Flags().GetString("username")
	if username == "" {
		username = cfg.Admin.Username
	}
	password, _ := cmd.Flags().GetString("password")
	return rejected(diaryBoard.Login(username, password))
}
