package application

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"workshop/internal/domain"
	"workshop/internal/ports"
)

// WorkflowState tracks where a single import workflow is in its
// lifecycle. Cancelled and Committed are terminal; CommitFailed is
// terminal too but still hands back its partial report.
type WorkflowState int

const (
	StateCreated WorkflowState = iota
	StateDryRunRun
	StateCancelled
	StateCommitting
	StateCommitted
	StateCommitFailed
)

// String returns a human-readable name for the state
func (s WorkflowState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateDryRunRun:
		return "dry-run"
	case StateCancelled:
		return "cancelled"
	case StateCommitting:
		return "committing"
	case StateCommitted:
		return "committed"
	case StateCommitFailed:
		return "commit-failed"
	default:
		return "unknown"
	}
}

// ImportWorkflow drives one scan → preview → confirm → commit sequence.
// Each workflow owns its own scan results and preview; there is no
// shared state across instances. The commit is single-use: the state
// machine, not caller discipline, guarantees at most one project per
// workflow.
type ImportWorkflow struct {
	scanner ports.TreeScanner
	store   ports.ProjectStore

	root string
	name string
	cfg  domain.DetectorConfig

	mu      sync.Mutex
	state   WorkflowState
	preview *domain.DryRunPreview
}

// NewImportWorkflow creates a workflow for one source root. An empty
// name defaults to the root folder's base name.
func NewImportWorkflow(scanner ports.TreeScanner, store ports.ProjectStore, root, name string, cfg domain.DetectorConfig) *ImportWorkflow {
	if name == "" {
		name = filepath.Base(filepath.Clean(root))
	}
	return &ImportWorkflow{
		scanner: scanner,
		store:   store,
		root:    root,
		name:    name,
		cfg:     cfg,
	}
}

// State returns the current workflow state.
func (w *ImportWorkflow) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Preview returns the last dry-run preview, or nil before RunDryRun.
func (w *ImportWorkflow) Preview() *domain.DryRunPreview {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.preview
}

// RunDryRun scans, analyzes, and builds the preview. It has no side
// effects and may be called repeatedly, including after cancellation.
func (w *ImportWorkflow) RunDryRun(ctx context.Context) (*domain.DryRunPreview, error) {
	result, err := w.scanner.Scan(ctx, w.root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", w.root, err)
	}

	analysis := domain.Analyze(result, w.cfg)
	preview := domain.BuildPreview(result, analysis, w.cfg)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateCreated {
		w.state = StateDryRunRun
	}
	w.preview = preview
	return preview, nil
}

// Cancel terminates the workflow before commit. Always safe and free.
func (w *ImportWorkflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.state {
	case StateCommitted, StateCommitting:
		return ErrAlreadyCommitted
	}
	w.state = StateCancelled
	return nil
}

// Commit performs the import. With confirmed=false the workflow is
// cancelled and no partial state exists. With confirmed=true it
// re-scans the current filesystem state (the preview is never
// trusted), creates exactly one tagged project, and links every
// currently-supported file preserving its relative path. Per-file link
// failures are recorded in the report and do not abort the batch; only
// project creation failure is fatal.
func (w *ImportWorkflow) Commit(ctx context.Context, confirmed bool) (*domain.ImportReport, error) {
	w.mu.Lock()
	switch w.state {
	case StateCommitted, StateCommitting, StateCommitFailed:
		w.mu.Unlock()
		return nil, ErrAlreadyCommitted
	case StateCancelled:
		w.mu.Unlock()
		return nil, ErrCancelled
	}
	if !confirmed {
		w.state = StateCancelled
		w.mu.Unlock()
		return nil, ErrCancelled
	}
	w.state = StateCommitting
	w.mu.Unlock()

	report, err := w.commit(ctx)

	w.mu.Lock()
	if err != nil {
		w.state = StateCommitFailed
	} else {
		w.state = StateCommitted
	}
	w.mu.Unlock()
	return report, err
}

func (w *ImportWorkflow) commit(ctx context.Context) (*domain.ImportReport, error) {
	start := time.Now()

	// Fresh scan: files added or removed since the preview are
	// re-classified, not blindly trusted.
	result, err := w.scanner.Scan(ctx, w.root)
	if err != nil {
		return nil, &CommitAbortedError{Root: w.root, Err: err}
	}
	analysis := domain.Analyze(result, w.cfg)

	meta := domain.ProjectMetadata{
		OriginalRootPath: w.root,
		ImportedAt:       start,
		Structure:        analysis.Structure,
	}
	projectID, err := w.store.CreateProject(ctx, w.name, []string{domain.TagImportedProject}, meta)
	if err != nil {
		return nil, &CommitAbortedError{Root: w.root, Err: err}
	}

	report := &domain.ImportReport{
		ProjectID:        projectID,
		ProjectName:      w.name,
		ImportedAt:       start,
		Structure:        analysis.Structure,
		FoldersPreserved: analysis.TotalFolders,
	}

	for _, fc := range result.Files {
		switch fc.Disposition {
		case domain.DispositionBlocked:
			report.FilesBlocked++
			report.BlockedPaths = append(report.BlockedPaths, fc.RelPath)
		case domain.DispositionSupported:
			if err := w.store.LinkFile(ctx, projectID, fc.RelPath, fc.Path); err != nil {
				report.Errors = append(report.Errors,
					fmt.Sprintf("%s: %v", fc.RelPath, err))
				continue
			}
			report.FilesImported++
			report.StorageBytes += fc.Size
		}
	}

	report.Duration = time.Since(start)
	return report, nil
}
