package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	colors  bool
	version = "dev" // Will be set by build flags
)

var rootCmd = &cobra.Command{
	Use:   "porty",
	Short: "Local port inspector",
	Long: `Porty inspects the local host's listening TCP ports, maps each to its
owning process, and classifies it (dev server, database, container, system).
Without a subcommand it shows dev servers and unclassified listeners.`,
	Version: version,
	Args:    cobra.NoArgs,
	RunE:    runDefault,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <user config dir>/porty/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show verbose output including executable paths")
	rootCmd.PersistentFlags().BoolVarP(&colors, "colors", "c", false, "enable colored output (green for dev, red for unknown, yellow for system)")

	// Subcommands are defined in show.go, port.go and kill.go.
	rootCmd.AddCommand(allCmd, devCmd, prodCmd, portCmd, freeCmd, killCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
