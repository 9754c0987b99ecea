package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"workshop/internal/adapters/tui"
	"workshop/internal/application"
	"workshop/internal/application/commands"
	"workshop/internal/domain"
)

var (
	importName string
	importYes  bool
	importCopy bool
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import a source folder into the library",
	Long: `Import a source folder as a new tagged project, preserving its folder
structure. The import always starts with a dry run; without --yes an
interactive preview asks for confirmation before anything is written.

Blocked files (executables, scripts, system and config files) are never
imported; they are listed in the import report instead.

Examples:
  workshop-cli import ~/Downloads/benchy_collection
  workshop-cli import /mnt/usb/models --name "USB models" --yes
  workshop-cli import ./kit --yes --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		store, err := OpenStore()
		if err != nil {
			return err
		}
		defer store.Close()

		importCmd := commands.NewImportCommand(GetScanner(), store, args[0], importName, domain.DefaultDetectorConfig())
		if !importYes {
			importCmd.Confirm = func(preview *domain.DryRunPreview) (bool, error) {
				return tui.Confirm(preview)
			}
		}

		result, err := importCmd.Execute(ctx)
		if errors.Is(err, application.ErrCancelled) {
			fmt.Println("Import cancelled; nothing was created.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Print(result.Report.Summary())

		if importCopy {
			if err := clipboard.WriteAll(result.Report.ProjectID); err != nil {
				fmt.Printf("could not copy project ID to clipboard: %v\n", err)
			} else {
				fmt.Println("Project ID copied to clipboard.")
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVarP(&importName, "name", "n", "", "project name (defaults to the folder name)")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "skip the interactive confirmation")
	importCmd.Flags().BoolVar(&importCopy, "copy", false, "copy the new project ID to the clipboard")
}
