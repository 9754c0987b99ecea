package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage library projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects in the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		store, err := OpenStore()
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.ListProjects(ctx)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No projects yet.")
			return nil
		}

		for _, rec := range records {
			fmt.Printf("%s  %-30s  [%s]  %s  %s\n",
				rec.ID,
				rec.Name,
				strings.Join(rec.Tags, ","),
				rec.Metadata.ImportedAt.Format("2006-01-02"),
				rec.Metadata.OriginalRootPath,
			)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsListCmd)
}
