package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╔═╗╔═╗╔╦╗
  ║  ║ ║║ ║║║║
  ╩═╝╚═╝╚═╝╩ ╩
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "loom",
		Short: "Inspect and serve loom tree files",
		Long: `Loom is a headless tree-state engine for Go.

The loom CLI works with tree definition files (YAML): it renders
them as ASCII trees with selection and open markers, flattens them
to parent-pointer records, and serves them over the devtools HTTP
API for interactive inspection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		renderCmd(),
		flatCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the loom ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
