package commands

import (
	"context"
	"fmt"

	"workshop/internal/application"
	"workshop/internal/domain"
	"workshop/internal/ports"
)

// ImportResult contains the result of a committed import
type ImportResult struct {
	Report  *domain.ImportReport
	Message string
}

// ImportCommand runs the full import workflow: dry run, a single
// confirmation decision, then commit.
type ImportCommand struct {
	scanner ports.TreeScanner
	store   ports.ProjectStore
	Root    string
	Name    string
	Config  domain.DetectorConfig

	// Confirm receives the preview and returns the commit decision.
	// Nil means unconditionally confirmed (e.g. --yes).
	Confirm func(*domain.DryRunPreview) (bool, error)
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(scanner ports.TreeScanner, store ports.ProjectStore, root, name string, cfg domain.DetectorConfig) *ImportCommand {
	return &ImportCommand{
		scanner: scanner,
		store:   store,
		Root:    root,
		Name:    name,
		Config:  cfg,
	}
}

// Validate checks if the import operation is valid
func (c *ImportCommand) Validate() error {
	if c.Root == "" {
		return &application.ValidationError{
			Field:   "root",
			Message: "source path is required",
		}
	}
	return nil
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context) (*ImportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	workflow := application.NewImportWorkflow(c.scanner, c.store, c.Root, c.Name, c.Config)
	preview, err := workflow.RunDryRun(ctx)
	if err != nil {
		return nil, err
	}

	confirmed := true
	if c.Confirm != nil {
		confirmed, err = c.Confirm(preview)
		if err != nil {
			return nil, fmt.Errorf("confirmation failed: %w", err)
		}
	}

	report, err := workflow.Commit(ctx, confirmed)
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Report:  report,
		Message: fmt.Sprintf("Imported %d files into project %s", report.FilesImported, report.ProjectName),
	}, nil
}
