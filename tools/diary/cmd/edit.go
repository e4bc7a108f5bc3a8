package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"github.com/perpetuallyhorni/diary/pkg/board"
	cliconfig "github.com/perpetuallyhorni/diary/tools/diary/internal/config"
	"github.com/spf13/cobra"
)

// editCmd is the parent command for editing files.
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the configuration file in your editor.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var editConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the configuration file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			var err error
			path, err = xdg.ConfigFile(filepath.Join(cliconfig.AppName, "config.yaml"))
			if err != nil {
				return fmt.Errorf("could not determine default config file path: %w", err)
			}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return fmt.Errorf("could not create config directory: %w", err)
		}

		editor, err := determineEditor(cmd)
		if err != nil {
			return err
		}
		console.Info("Opening config file with '%s': %s", editor, path)
		return openInEditor(editor, path)
	},
}

// determineEditor picks the editor from the --editor flag, the config, $EDITOR
// and finally a platform fallback, in that order.
func determineEditor(cmd *cobra.Command) (string, error) {
	if editor, _ := cmd.Flags().GetString("editor"); editor != "" {
		return editor, nil
	}
	if cfg != nil && cfg.Editor != "" {
		return cfg.Editor, nil
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor, nil
	}

	if runtime.GOOS == "windows" {
		return "notepad", nil
	}
	for _, editor := range []string{"nano", "vi", "vim"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no suitable editor found. set the --editor flag, 'editor' in your config, or $EDITOR")
}

func openInEditor(editor, filePath string) error {
	// #nosec G204 -- the editor comes from flags, config, env or fixed fallbacks.
	c := exec.Command(editor, filePath)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// editorPrompter returns a Prompter that opens the current post content in
// the editor and reads the saved text back. A single trailing newline added
// by the editor is dropped.
func editorPrompter(cmd *cobra.Command) board.Prompter {
	return func(current string) (string, error) {
		editor, err := determineEditor(cmd)
		if err != nil {
			return "", err
		}
		f, err := os.CreateTemp("", "diary-post-*.txt")
		if err != nil {
			return "", err
		}
		path := f.Name()
		defer os.Remove(path)

		if _, err := f.WriteString(current); err != nil {
			_ = f.Close()
			return "", err
		}
		if err := f.Close(); err != nil {
			return "", err
		}
		if err := openInEditor(editor, path); err != nil {
			return "", fmt.Errorf("editor failed: %w", err)
		}

		b, err := os.ReadFile(path) // #nosec G304
		if err != nil {
			return "", err
		}
		text := strings.TrimSuffix(string(b), "\n")
		return strings.TrimSuffix(text, "\r"), nil
	}
}

func init() {
	editCmd.PersistentFlags().String("editor", "", "Editor to use (e.g. 'code', 'vim', 'notepad'). Overrides config and $EDITOR.")
	editCmd.AddCommand(editConfigCmd)
}
