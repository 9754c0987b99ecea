package commands

import (
	"context"
	"fmt"

	"workshop/internal/application"
	"workshop/internal/domain"
	"workshop/internal/ports"
)

// AnalyzeResult contains the result of analyzing a source tree
type AnalyzeResult struct {
	Analysis domain.LibraryStructureAnalysis
	Message  string
}

// AnalyzeCommand detects the organizational structure of a source tree
type AnalyzeCommand struct {
	scanner ports.TreeScanner
	Root    string
	Config  domain.DetectorConfig
}

// NewAnalyzeCommand creates a new AnalyzeCommand
func NewAnalyzeCommand(scanner ports.TreeScanner, root string, cfg domain.DetectorConfig) *AnalyzeCommand {
	return &AnalyzeCommand{
		scanner: scanner,
		Root:    root,
		Config:  cfg,
	}
}

// Validate checks if the analyze operation is valid
func (c *AnalyzeCommand) Validate() error {
	if c.Root == "" {
		return &application.ValidationError{
			Field:   "root",
			Message: "source path is required",
		}
	}
	return nil
}

// Execute runs the analyze command
func (c *AnalyzeCommand) Execute(ctx context.Context) (*AnalyzeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result, err := c.scanner.Scan(ctx, c.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", c.Root, err)
	}

	analysis := domain.Analyze(result, c.Config)
	return &AnalyzeResult{
		Analysis: analysis,
		Message: fmt.Sprintf("Analyzed %s: %s structure, confidence %.0f/100",
			c.Root, analysis.Structure, analysis.ConfidenceScore),
	}, nil
}
