// Package main provides the entry point for the rightmove CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the rightmove CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rightmove",
		Short: "Scrape property listings from Rightmove search results",
		Long: `rightmove collects structured property data from the results of a search
performed on www.rightmove.co.uk.

Give it a search results URL and it follows the pagination, extracts every
listing (price, type, address, agent, bedrooms), optionally resolves each
listing's floorplan image URL, and exports one fixed-column table.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
