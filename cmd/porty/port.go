package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jihwankim/porty/pkg/discovery"
	"github.com/jihwankim/porty/pkg/inspect"
	"github.com/jihwankim/porty/pkg/reporting"
)

var portCmd = &cobra.Command{
	Use:   "port <port>",
	Args:  cobra.ExactArgs(1),
	Short: "Show process info for a specific port",
	RunE:  runPort,
}

var freeCmd = &cobra.Command{
	Use:   "free <port>",
	Args:  cobra.ExactArgs(1),
	Short: "Check if a port is available",
	RunE:  runFree,
}

func runPort(cmd *cobra.Command, args []string) error {
	port, err := parsePort(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	entries := snapshot(cmd.Context(), cfg)
	found := discovery.FilterPort(entries, port)

	reporting.PrintBanner(os.Stdout, colors)

	if len(found) == 0 {
		fmt.Printf("No listener found on port %d\n", port)
		return nil
	}

	// Detail view for the first attributed entry; table fallback when the
	// OS could not name an owning process.
	if first := found[0]; first.HasPID() {
		agg := inspect.NewAggregator(cfg.Detail.EnvAllowlist)
		details := agg.Collect(cmd.Context(), port, first.PID, first.Process, first.ExecPath, first.Kind)
		reporting.PrintDetails(os.Stdout, details, colors)
		return nil
	}

	reporting.PrintTable(os.Stdout, found, verbose, colors)
	return nil
}

func runFree(cmd *cobra.Command, args []string) error {
	port, err := parsePort(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	found := discovery.FilterPort(snapshot(cmd.Context(), cfg), port)
	if len(found) == 0 {
		fmt.Printf("No TCP listener found on port %d\n", port)
		return nil
	}

	fmt.Printf("Port %d is in use:\n", port)
	for _, e := range found {
		if e.HasPID() && e.Process != "" {
			fmt.Printf("  %s (PID %d)\n", e.Process, e.PID)
			fmt.Printf("  Hint: kill %d or use 'porty kill %d'\n", e.PID, port)
		}
	}
	return nil
}

func parsePort(arg string) (uint16, error) {
	port, err := strconv.ParseUint(arg, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", arg, err)
	}
	return uint16(port), nil
}
