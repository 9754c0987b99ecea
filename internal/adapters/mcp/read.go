package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"workshop/internal/application/commands"
	"workshop/internal/domain"
	"workshop/internal/ports"
)

// RegisterReadTools adds all read-only import tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, scanner ports.TreeScanner, store ports.ProjectStore, cfg domain.DetectorConfig) {
	s.AddTool(analyzeTool(), analyzeHandler(scanner, cfg))
	s.AddTool(dryRunTool(), dryRunHandler(scanner, cfg))
	s.AddTool(listProjectsTool(), listProjectsHandler(store))
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

// --- analyze_structure ---

func analyzeTool() mcp.Tool {
	return mcp.NewTool("analyze_structure",
		mcp.WithDescription("Analyze how a source folder is organized. Returns structure type, confidence score, signals, and recommendations. Read-only."),
		mcp.WithString("root",
			mcp.Description("Path of the folder to analyze"),
			mcp.Required(),
		),
	)
}

func analyzeHandler(scanner ports.TreeScanner, cfg domain.DetectorConfig) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root := req.GetString("root", "")
		if root == "" {
			return toolError(fmt.Errorf("root is required"))
		}

		cmd := commands.NewAnalyzeCommand(scanner, root, cfg)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(formatAnalysis(result.Analysis)), nil
	}
}

func formatAnalysis(a domain.LibraryStructureAnalysis) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "structure: %s\n", a.Structure)
	fmt.Fprintf(&sb, "confidence: %.0f/100\n", a.ConfidenceScore)
	fmt.Fprintf(&sb, "grouped by type: %t\n", a.FileTypeGrouping)
	fmt.Fprintf(&sb, "files: %d, folders: %d, max depth: %d\n", a.TotalFiles, a.TotalFolders, a.MaxDepth)
	if len(a.MetadataFiles) > 0 {
		fmt.Fprintf(&sb, "metadata files: %s\n", strings.Join(a.MetadataFiles, ", "))
	}
	for _, rec := range a.Recommendations {
		fmt.Fprintf(&sb, "recommendation: %s\n", rec)
	}
	return sb.String()
}

// --- dry_run ---

func dryRunTool() mcp.Tool {
	return mcp.NewTool("dry_run",
		mcp.WithDescription("Preview an import without committing anything: supported/blocked/metadata partition, folder tree, storage estimate, warnings."),
		mcp.WithString("root",
			mcp.Description("Path of the folder to preview"),
			mcp.Required(),
		),
	)
}

func dryRunHandler(scanner ports.TreeScanner, cfg domain.DetectorConfig) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root := req.GetString("root", "")
		if root == "" {
			return toolError(fmt.Errorf("root is required"))
		}

		cmd := commands.NewDryRunCommand(scanner, root, cfg)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(formatPreview(result.Preview)), nil
	}
}

func formatPreview(p *domain.DryRunPreview) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "supported: %d, blocked: %d, metadata: %d\n",
		len(p.Supported), len(p.Blocked), len(p.Metadata))
	fmt.Fprintf(&sb, "estimated storage: %s\n", domain.FormatBytes(p.EstimatedBytes))
	fmt.Fprintf(&sb, "structure: %s (confidence %.0f/100)\n\n",
		p.Analysis.Structure, p.Analysis.ConfidenceScore)
	sb.WriteString(p.Tree.Render())
	if len(p.Blocked) > 0 {
		sb.WriteString("\nblocked files:\n")
		for _, fc := range p.Blocked {
			fmt.Fprintf(&sb, "  %s (%s)\n", fc.RelPath, fc.BlockReason)
		}
	}
	for _, w := range p.Warnings {
		fmt.Fprintf(&sb, "warning: %s\n", w)
	}
	return sb.String()
}

// --- list_projects ---

func listProjectsTool() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List projects in the library with their tags and import metadata."),
	)
}

func listProjectsHandler(store ports.ProjectStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		records, err := store.ListProjects(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(records) == 0 {
			return mcp.NewToolResultText("No projects found."), nil
		}

		var sb strings.Builder
		for _, rec := range records {
			fmt.Fprintf(&sb, "%s  %s  [%s]  %s\n",
				rec.ID, rec.Name, strings.Join(rec.Tags, ","), rec.Metadata.OriginalRootPath)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}
