package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"workshop/internal/application/commands"
	"workshop/internal/domain"
)

var dryrunCmd = &cobra.Command{
	Use:   "dryrun <path>",
	Short: "Preview an import without changing anything",
	Long: `Simulate an import of a source folder. Prints the folder tree with
per-folder file counts, the supported/blocked/metadata partition, the
storage estimate, and any warnings. Nothing is written.

Examples:
  workshop-cli dryrun ~/Downloads/benchy_collection`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		dryRunCmd := commands.NewDryRunCommand(GetScanner(), args[0], domain.DefaultDetectorConfig())
		result, err := dryRunCmd.Execute(ctx)
		if err != nil {
			return err
		}

		preview := result.Preview
		fmt.Println(result.Message)
		fmt.Println()
		fmt.Print(preview.Tree.Render())

		if len(preview.Blocked) > 0 {
			fmt.Println("\nBlocked files:")
			for _, fc := range preview.Blocked {
				fmt.Printf("  %s (%s)\n", fc.RelPath, fc.BlockReason)
			}
		}
		for _, w := range preview.Warnings {
			fmt.Printf("warning: %s\n", w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dryrunCmd)
}
