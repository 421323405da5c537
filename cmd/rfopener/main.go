package main

import (
	"fmt"
	"os"

	"github.com/harrison/rfopener/internal/cmd"
)

// Version is the current version of rfopener, overridable with
// -ldflags "-X main.Version=..."
var Version = "1.0.0"

func main() {
	cmd.Version = Version
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
