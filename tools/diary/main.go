package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/perpetuallyhorni/diary/tools/diary/cmd"
)

// version is set at build time with -ldflags "-X main.version=v1.2".
var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		// Rejected actions have already been shown as a notice.
		if !errors.Is(err, cmd.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
