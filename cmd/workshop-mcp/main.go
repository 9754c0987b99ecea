package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "workshop/internal/adapters/mcp"
	"workshop/internal/adapters/scanner"
	"workshop/internal/adapters/sqlite"
	"workshop/internal/config"
	"workshop/internal/domain"
)

func main() {
	libraryFlag := flag.String("library", config.LibraryPath(), "path to the project library")
	blockTempFlag := flag.Bool("block-temp", config.BlockTemporary(), "also block temporary/cache/log files")
	flag.Parse()

	treeScanner := scanner.New(domain.ClassifyOptions{BlockTemporary: *blockTempFlag})
	store, err := sqlite.Open(*libraryFlag)
	if err != nil {
		log.Fatalf("workshop-mcp: %v", err)
	}
	defer store.Close()

	cfg := domain.DefaultDetectorConfig()

	mcpServer := server.NewMCPServer(
		"workshop-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, treeScanner, store, cfg)
	mcpadapter.RegisterWriteTools(mcpServer, treeScanner, store, cfg)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("workshop-mcp: %v", err)
	}
}
