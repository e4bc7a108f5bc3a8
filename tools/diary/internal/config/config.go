package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/perpetuallyhorni/diary/pkg/config"
)

// AppName is the directory name under the XDG base directories.
const AppName = config.AppName

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageDir    = "dir"
)

// Config extends the core config with CLI-specific options.
type Config struct {
	config.Config   `koanf:",squash"`
	Storage         string `koanf:"storage"`
	DatabasePath    string `koanf:"database_path"`
	DataDir         string `koanf:"data_dir"`
	Editor          string `koanf:"editor"`
	CheckForUpdates bool   `koanf:"check_for_updates"`
	AutoUpdate      bool   `koanf:"auto_update"`
}

// Default returns the default CLI configuration.
func Default() (*Config, error) {
	coreCfg := config.Default()
	dbPath, err := xdg.DataFile(filepath.Join(AppName, "board.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to get default db path: %w", err)
	}
	return &Config{
		Config:       *coreCfg,
		Storage:      StorageSQLite,
		DatabasePath: dbPath,
		DataDir:      filepath.Join(filepath.Dir(dbPath), "slots"),
		Editor:       "", // Resolved by the editor prompt when empty.
	}, nil
}

// Load loads the configuration from the given path, creating a commented
// default file when none exists.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	defCfg, err := Default()
	if err != nil {
		return nil, err
	}
	cfgPath := path
	if cfgPath == "" {
		cfgPath, err = xdg.ConfigFile(filepath.Join(AppName, "config.yaml"))
		if err != nil {
			return nil, fmt.Errorf("failed to get default config path: %w", err)
		}
	}
	if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
		if err := createDefaultConfig(cfgPath, defCfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}
	if err := k.Load(file.Provider(cfgPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	cfg := defCfg
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Empty paths in the file fall back to the defaults.
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defCfg.DatabasePath
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(filepath.Dir(cfg.DatabasePath), "slots")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageDir:
	default:
		return fmt.Errorf("invalid storage %q in config, must be %q or %q", c.Storage, StorageSQLite, StorageDir)
	}
	if c.Admin.Username == "" {
		return fmt.Errorf("admin.username must not be empty")
	}
	return nil
}

// createDefaultConfig creates a default configuration file.
func createDefaultConfig(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	content := fmt.Sprintf(`# diary CLI configuration file.
# Credentials for the admin login. This is a convenience gate, not security.
admin:
  username: "%s"
  password: "%s"
# Where the board is stored. Options: "sqlite", "dir".
storage: "%s"
# Path to the SQLite database used by the "sqlite" storage.
database_path: "%s"
# Directory holding one file per slot for the "dir" storage.
data_dir: "%s"
# Refuse to save when less than this many bytes are free. 0 disables the check.
min_free_bytes: %d
# Editor used to edit posts and the config. If empty, $EDITOR is checked, then common editors.
editor: "%s"
# Check GitHub for a newer release on startup.
check_for_updates: %t
# Install newer releases automatically when check_for_updates is on.
auto_update: %t
`, cfg.Admin.Username, cfg.Admin.Password, cfg.Storage, cfg.DatabasePath, cfg.DataDir, cfg.MinFreeBytes, cfg.Editor, cfg.CheckForUpdates, cfg.AutoUpdate)
	content = strings.ReplaceAll(content, "\\", "/")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write default config file: %w", err)
	}
	return nil
}
