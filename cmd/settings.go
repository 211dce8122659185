package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/speedkit/minishsplit/tmc"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Write a settings file with every milestone enabled.",
	Long: "`settings --init [path]` writes a settings file with every " +
		"milestone enabled, as a starting point for editing.",
	Run: func(cmd *cobra.Command, _ []string) {
		path, _ := cmd.Flags().GetString("init")
		if path == "" {
			fmt.Println("Action not valid.")
			return
		}

		if _, err := os.Stat(path); err == nil {
			log.Fatalf("Error: %s already exists.", path)
		}

		err := tmc.SaveSettings(path, tmc.DefaultSettings())
		if err != nil {
			log.Fatalf("Error writing settings: %v", err)
		}

		fmt.Printf("Settings written to %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.Flags().String("init", "", "Write a default settings file")
}
