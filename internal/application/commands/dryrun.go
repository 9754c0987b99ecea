package commands

import (
	"context"
	"fmt"

	"workshop/internal/application"
	"workshop/internal/domain"
	"workshop/internal/ports"
)

// DryRunResult contains the result of a dry-run preview
type DryRunResult struct {
	Preview *domain.DryRunPreview
	Message string
}

// DryRunCommand simulates an import without side effects
type DryRunCommand struct {
	scanner ports.TreeScanner
	Root    string
	Config  domain.DetectorConfig
}

// NewDryRunCommand creates a new DryRunCommand
func NewDryRunCommand(scanner ports.TreeScanner, root string, cfg domain.DetectorConfig) *DryRunCommand {
	return &DryRunCommand{
		scanner: scanner,
		Root:    root,
		Config:  cfg,
	}
}

// Validate checks if the dry-run operation is valid
func (c *DryRunCommand) Validate() error {
	if c.Root == "" {
		return &application.ValidationError{
			Field:   "root",
			Message: "source path is required",
		}
	}
	return nil
}

// Execute runs the dry-run command
func (c *DryRunCommand) Execute(ctx context.Context) (*DryRunResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	workflow := application.NewImportWorkflow(c.scanner, nil, c.Root, "", c.Config)
	preview, err := workflow.RunDryRun(ctx)
	if err != nil {
		return nil, err
	}

	return &DryRunResult{
		Preview: preview,
		Message: fmt.Sprintf("Dry run: %d supported, %d blocked, %d metadata (%s)",
			len(preview.Supported), len(preview.Blocked), len(preview.Metadata),
			domain.FormatBytes(preview.EstimatedBytes)),
	}, nil
}
