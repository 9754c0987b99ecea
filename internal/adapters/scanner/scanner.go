package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"workshop/internal/domain"
	"workshop/internal/ports"
)

// Scanner implements ports.TreeScanner against the real filesystem.
// Top-level subtrees are walked concurrently; partial results are
// combined through ScanResult.Merge and normalized, so the outcome is
// independent of scheduling order.
type Scanner struct {
	opts    domain.ClassifyOptions
	workers int
}

// Ensure Scanner implements TreeScanner
var _ ports.TreeScanner = (*Scanner)(nil)

// New creates a scanner with the given classification options.
func New(opts domain.ClassifyOptions) *Scanner {
	return &Scanner{
		opts:    opts,
		workers: runtime.NumCPU(),
	}
}

// Scan walks the tree rooted at root, classifying every file. The walk
// never mutates the filesystem. An unreadable subtree is recorded as a
// folder with zero files plus a warning; only an unreadable root is an
// error, since then there is nothing to scan at all.
func (s *Scanner) Scan(ctx context.Context, root string) (*domain.ScanResult, error) {
	root = expandHome(root)
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read source folder: %w", err)
	}

	result := domain.NewScanResult(root)
	rootStat := domain.FolderStat{
		RelPath:    ".",
		Name:       filepath.Base(root),
		Depth:      0,
		Extensions: make(map[string]int),
	}

	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, entry.Name())
			continue
		}
		info, err := entry.Info()
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unreadable file: %s", entry.Name()))
			continue
		}
		fc := domain.Classify(filepath.Join(root, entry.Name()), entry.Name(), info.Size(), s.opts)
		result.AddFile(fc)
		rootStat.FileCount++
		rootStat.Extensions[fc.Extension]++
	}
	result.Folders = append(result.Folders, rootStat)

	partials := make([]*domain.ScanResult, len(subdirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, name := range subdirs {
		g.Go(func() error {
			partial, err := s.walkSubtree(gctx, root, name)
			partials[i] = partial
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, partial := range partials {
		result.Merge(partial)
	}
	result.Normalize()
	return result, nil
}

// walkSubtree walks one top-level subtree sequentially, producing a
// partial result for the merge step. Only context cancellation is
// returned as an error; filesystem problems become warnings.
func (s *Scanner) walkSubtree(ctx context.Context, root, name string) (*domain.ScanResult, error) {
	partial := domain.NewScanResult(root)
	folderIdx := make(map[string]int)

	walkErr := filepath.WalkDir(filepath.Join(root, name), func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}

		if err != nil {
			// ReadDir failure on an already-recorded folder: keep it in
			// the folder count, record a warning, move on.
			if idx, ok := folderIdx[relPath]; ok {
				partial.Folders[idx].Unreadable = true
			}
			partial.Warnings = append(partial.Warnings,
				fmt.Sprintf("unreadable folder: %s", relPath))
			return nil
		}

		if d.IsDir() {
			folderIdx[relPath] = len(partial.Folders)
			partial.Folders = append(partial.Folders, domain.FolderStat{
				RelPath:    relPath,
				Name:       d.Name(),
				Depth:      folderDepth(relPath),
				Extensions: make(map[string]int),
			})
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			partial.Warnings = append(partial.Warnings,
				fmt.Sprintf("unreadable file: %s", relPath))
			return nil
		}

		fc := domain.Classify(path, relPath, info.Size(), s.opts)
		partial.AddFile(fc)
		if idx, ok := folderIdx[filepath.Dir(relPath)]; ok {
			partial.Folders[idx].FileCount++
			partial.Folders[idx].Extensions[fc.Extension]++
		}
		return nil
	})
	if walkErr != nil {
		return partial, walkErr
	}
	return partial, nil
}

// folderDepth counts path separators below the root, so a top-level
// folder has depth 1.
func folderDepth(relPath string) int {
	if relPath == "." {
		return 0
	}
	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
