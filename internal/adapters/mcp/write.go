package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"workshop/internal/application"
	"workshop/internal/application/commands"
	"workshop/internal/domain"
	"workshop/internal/ports"
)

// RegisterWriteTools adds the import tool to the MCP server.
func RegisterWriteTools(s *server.MCPServer, scanner ports.TreeScanner, store ports.ProjectStore, cfg domain.DetectorConfig) {
	s.AddTool(importTool(), importHandler(scanner, store, cfg))
}

func importTool() mcp.Tool {
	return mcp.NewTool("import_tree",
		mcp.WithDescription("Import a source folder into the library as a new tagged project. Requires confirmed=true; call dry_run first to preview."),
		mcp.WithString("root",
			mcp.Description("Path of the folder to import"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("Project name. Defaults to the folder's base name."),
		),
		mcp.WithBoolean("confirmed",
			mcp.Description("Must be true to commit. False cancels without side effects."),
			mcp.Required(),
		),
	)
}

func importHandler(scanner ports.TreeScanner, store ports.ProjectStore, cfg domain.DetectorConfig) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root := req.GetString("root", "")
		if root == "" {
			return toolError(fmt.Errorf("root is required"))
		}
		name := req.GetString("name", "")
		confirmed := req.GetBool("confirmed", false)

		cmd := commands.NewImportCommand(scanner, store, root, name, cfg)
		cmd.Confirm = func(*domain.DryRunPreview) (bool, error) { return confirmed, nil }

		result, err := cmd.Execute(ctx)
		if errors.Is(err, application.ErrCancelled) {
			return mcp.NewToolResultText("Import cancelled; nothing was created."), nil
		}
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Report.Summary()), nil
	}
}
