package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jihwankim/porty/pkg/discovery"
	"github.com/jihwankim/porty/pkg/killer"
)

var killCmd = &cobra.Command{
	Use:   "kill <port>",
	Args:  cobra.ExactArgs(1),
	Short: "Kill the process on a specific port",
	RunE:  runKill,
}

func init() {
	killCmd.Flags().BoolP("force", "f", false, "skip confirmation and kill immediately")
}

func runKill(cmd *cobra.Command, args []string) error {
	port, err := parsePort(args[0])
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	entries := snapshot(cmd.Context(), cfg)
	if len(discovery.FilterPort(entries, port)) == 0 {
		fmt.Printf("No process found on port %d\n", port)
		return nil
	}

	targets := killer.Targets(entries, port)
	if len(targets) == 0 {
		fmt.Printf("No killable process found on port %d\n", port)
		return nil
	}

	fmt.Printf("Process(es) on port %d:\n", port)
	for _, t := range targets {
		fmt.Printf("  %s (PID %d)\n", t.Process, t.PID)
	}

	if !force {
		fmt.Println("\nDry run mode. Use --force to actually kill the process(es).")
		fmt.Printf("Example: porty kill %d --force\n", port)
		return nil
	}

	fmt.Println("\nKilling process(es)...")
	for _, t := range targets {
		fmt.Printf("Killing %s (PID %d)...\n", t.Process, t.PID)
		if err := killer.KillWithGrace(t.PID, cfg.Kill.GracePeriod); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to kill process: %v\n", err)
			continue
		}
		fmt.Println("Process killed")
	}
	return nil
}
