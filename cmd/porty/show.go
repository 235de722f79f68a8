package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jihwankim/porty/pkg/discovery"
	"github.com/jihwankim/porty/pkg/reporting"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Args:  cobra.NoArgs,
	Short: "Show all listening ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showFiltered(cmd, nil)
	},
}

var devCmd = &cobra.Command{
	Use:   "dev",
	Args:  cobra.NoArgs,
	Short: "Show only dev servers (node etc.)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showFiltered(cmd, discovery.FilterDev)
	},
}

var prodCmd = &cobra.Command{
	Use:   "prod",
	Args:  cobra.NoArgs,
	Short: "Show dev servers and containers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showFiltered(cmd, discovery.FilterProd)
	},
}

func runDefault(cmd *cobra.Command, args []string) error {
	return showFiltered(cmd, discovery.FilterDefault)
}

// showFiltered renders the banner and the filtered listener table. A nil
// filter shows everything.
func showFiltered(cmd *cobra.Command, filter func([]discovery.PortEntry) []discovery.PortEntry) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	entries := snapshot(cmd.Context(), cfg)
	if filter != nil {
		entries = filter(entries)
	}

	reporting.PrintBanner(os.Stdout, colors)
	reporting.PrintTable(os.Stdout, entries, verbose, colors)
	return nil
}
