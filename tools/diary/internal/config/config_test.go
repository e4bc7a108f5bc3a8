package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if cfg.Admin.Username != "admin" || cfg.Admin.Password != "password" {
		t.Fatalf("admin = %+v", cfg.Admin)
	}
	if cfg.Storage != StorageSQLite || cfg.DatabasePath == "" || cfg.DataDir == "" {
		t.Fatalf("storage defaults = %q %q %q", cfg.Storage, cfg.DatabasePath, cfg.DataDir)
	}
	if cfg.MinFreeBytes != 1<<20 {
		t.Fatalf("min_free_bytes = %d", cfg.MinFreeBytes)
	}

	// The generated file must load back to the same values.
	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *again != *cfg {
		t.Fatalf("reloaded config = %+v, want %+v", again, cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `admin:
  username: "editor"
  password: "s3cret"
storage: "dir"
data_dir: "` + filepath.ToSlash(filepath.Join(dir, "slots")) + `"
min_free_bytes: 0
editor: "vim"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Admin.Username != "editor" || cfg.Admin.Password != "s3cret" {
		t.Fatalf("admin = %+v", cfg.Admin)
	}
	if cfg.Storage != StorageDir || cfg.DataDir != filepath.ToSlash(filepath.Join(dir, "slots")) {
		t.Fatalf("storage = %q %q", cfg.Storage, cfg.DataDir)
	}
	if cfg.MinFreeBytes != 0 || cfg.Editor != "vim" {
		t.Fatalf("min_free_bytes=%d editor=%q", cfg.MinFreeBytes, cfg.Editor)
	}
	if cfg.DatabasePath == "" {
		t.Fatalf("database_path should fall back to the default")
	}
}

func TestLoad_InvalidStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage: \"mongo\"\n"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an unknown storage")
	}
}
