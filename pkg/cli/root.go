// Package cli provides the command-line interface for pack.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	verbosity string
	version   string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pack",
	Short: "A package manager for vim's native package feature",
	Long: `pack keeps a declarative registry of vim plugins, installs and
updates them concurrently, and regenerates the loader script vim
reads at startup.`,

	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("pack v%s\n", version)
			return
		}
		// No subcommand, show help
		cmd.Help()
	},
}

// Execute runs the CLI.
func Execute(v string) error {
	version = v

	initializeRootCommand()

	return rootCmd.Execute()
}

// initializeRootCommand sets up the root command and its flags.
// Explicit initialization instead of init() keeps it testable.
func initializeRootCommand() {
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVarP(&verbosity, "verbosity", "v", "info", "log level (debug, info, warn, error)")

	rootCmd.Flags().Bool("version", false, "Print version information and quit")

	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newUninstallCmd())
	rootCmd.AddCommand(newListCmd())
}

// Helper functions

func printSuccess(message string) {
	fmt.Printf("%s %s\n", color.GreenString("[pack]"), message)
}

func printError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("[pack]"), message)
}

func printInfo(message string) {
	fmt.Printf("%s %s\n", color.CyanString("[pack]"), message)
}
