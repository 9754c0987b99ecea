package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"workshop/internal/application/commands"
	"workshop/internal/domain"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path>",
	Short: "Detect how a source folder is organized",
	Long: `Analyze a source folder and report its organizational structure:
structure type, confidence score, file type grouping, metadata files,
and recommendations.

Examples:
  workshop-cli analyze ~/Downloads/benchy_collection
  workshop-cli analyze /mnt/usb/models --block-temp`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		analyzeCmd := commands.NewAnalyzeCommand(GetScanner(), args[0], domain.DefaultDetectorConfig())
		result, err := analyzeCmd.Execute(ctx)
		if err != nil {
			return err
		}

		a := result.Analysis
		fmt.Println(result.Message)
		fmt.Printf("  grouped by type: %t\n", a.FileTypeGrouping)
		fmt.Printf("  files: %d, folders: %d, max depth: %d\n", a.TotalFiles, a.TotalFolders, a.MaxDepth)
		if len(a.MetadataFiles) > 0 {
			fmt.Printf("  metadata: %v\n", a.MetadataFiles)
		}

		exts := make([]string, 0, len(a.Extensions))
		for ext := range a.Extensions {
			exts = append(exts, ext)
		}
		sort.Strings(exts)
		for _, ext := range exts {
			label := ext
			if label == "" {
				label = "(none)"
			}
			fmt.Printf("  .%-8s %d\n", label, a.Extensions[ext])
		}

		for _, rec := range a.Recommendations {
			fmt.Printf("  -> %s\n", rec)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
