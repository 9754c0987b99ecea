package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"workshop/internal/adapters/scanner"
	"workshop/internal/adapters/sqlite"
	"workshop/internal/config"
	"workshop/internal/domain"
	"workshop/internal/ports"
)

var (
	libraryPath string
	blockTemp   bool
	treeScanner ports.TreeScanner
)

var rootCmd = &cobra.Command{
	Use:   "workshop-cli",
	Short: "CLI for importing folder trees into the workshop library",
	Long: `workshop-cli brings pre-existing folder trees into a managed project
library while preserving whatever structure they already have.

It detects how a folder is organized, classifies every file as
supported, blocked, or metadata, previews the import as a dry run, and
only commits once you confirm.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		treeScanner = scanner.New(domain.ClassifyOptions{BlockTemporary: blockTemp})
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&libraryPath, "library", "l", config.LibraryPath(), "path to the project library")
	rootCmd.PersistentFlags().BoolVar(&blockTemp, "block-temp", config.BlockTemporary(), "also block temporary/cache/log files")
}

// GetScanner returns the initialized tree scanner
func GetScanner() ports.TreeScanner {
	return treeScanner
}

// OpenStore opens the project store for commands that need it
func OpenStore() (*sqlite.Store, error) {
	return sqlite.Open(libraryPath)
}
