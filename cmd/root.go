// Package cmd provides the command-line interface for minishsplit.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "minishsplit",
	Short: "minishsplit watches a GBA emulator running The Minish Cap and " +
		"splits a LiveSplit timer at route milestones.",
	Long: `minishsplit attaches to a running GBA emulator, polls the game's ` +
		`work RAM, and reports run start, game time, and splits to a ` +
		`LiveSplit Server instance.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
