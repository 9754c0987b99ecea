package domain

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FolderNode is one folder in the dry-run tree rendering.
type FolderNode struct {
	Name      string
	RelPath   string
	FileCount int // Direct files only
	Children  []*FolderNode
}

// DryRunPreview is the read-only result of simulating an import.
// It exists only for the duration of one workflow and is never stored.
type DryRunPreview struct {
	Root           string
	Analysis       LibraryStructureAnalysis
	Supported      []FileClassification
	Blocked        []FileClassification
	Metadata       []FileClassification
	EstimatedBytes int64 // Sum of supported-file sizes only
	Tree           *FolderNode
	Warnings       []string
}

// BuildPreview composes scan and analysis output into a preview. Pure:
// no filesystem access beyond what the scan already performed, so it
// can be re-run cheaply without re-scanning.
func BuildPreview(r *ScanResult, analysis LibraryStructureAnalysis, cfg DetectorConfig) *DryRunPreview {
	p := &DryRunPreview{
		Root:     r.Root,
		Analysis: analysis,
	}

	for _, fc := range r.Files {
		switch fc.Disposition {
		case DispositionSupported:
			p.Supported = append(p.Supported, fc)
			p.EstimatedBytes += fc.Size
		case DispositionBlocked:
			p.Blocked = append(p.Blocked, fc)
		case DispositionMetadata:
			p.Metadata = append(p.Metadata, fc)
		}
	}

	p.Tree = BuildFolderTree(r.Folders)
	p.Warnings = previewWarnings(r, analysis, len(p.Blocked), cfg)
	return p
}

// BuildFolderTree arranges folder stats into a tree preserving relative
// paths. Children are sorted by name for a stable rendering.
func BuildFolderTree(folders []FolderStat) *FolderNode {
	nodes := make(map[string]*FolderNode, len(folders)+1)
	root := &FolderNode{Name: ".", RelPath: "."}
	nodes["."] = root

	// ensure creates intermediate nodes so an out-of-order folder list
	// still yields a connected tree.
	var ensure func(relPath string) *FolderNode
	ensure = func(relPath string) *FolderNode {
		if n, ok := nodes[relPath]; ok {
			return n
		}
		n := &FolderNode{Name: filepath.Base(relPath), RelPath: relPath}
		nodes[relPath] = n
		parent := ensure(filepath.Dir(relPath))
		parent.Children = append(parent.Children, n)
		return n
	}

	for _, f := range folders {
		n := ensure(f.RelPath)
		n.FileCount = f.FileCount
	}

	var sortChildren func(n *FolderNode)
	sortChildren = func(n *FolderNode) {
		sort.Slice(n.Children, func(i, j int) bool { return n.Children[i].Name < n.Children[j].Name })
		for _, c := range n.Children {
			sortChildren(c)
		}
	}
	sortChildren(root)
	return root
}

// Render returns an indented tree listing with per-folder file counts.
func (n *FolderNode) Render() string {
	var sb strings.Builder
	n.render(&sb, 0)
	return sb.String()
}

func (n *FolderNode) render(sb *strings.Builder, depth int) {
	name := n.Name
	if n.RelPath == "." {
		name = "/"
	}
	fmt.Fprintf(sb, "%s%s (%d files)\n", strings.Repeat("  ", depth), name, n.FileCount)
	for _, c := range n.Children {
		c.render(sb, depth+1)
	}
}

// previewWarnings derives user-facing warnings from detector signals and
// classification results. None of them is an error: the dry run always
// completes.
func previewWarnings(r *ScanResult, analysis LibraryStructureAnalysis, blocked int, cfg DetectorConfig) []string {
	warnings := append([]string(nil), r.Warnings...)

	if analysis.TotalFiles == 0 {
		warnings = append(warnings, "the folder contains no files")
		return warnings
	}
	if len(analysis.MetadataFiles) == 0 {
		warnings = append(warnings, "no metadata files found")
	}
	if analysis.MaxDepth >= cfg.DeepNestingWarn {
		warnings = append(warnings,
			fmt.Sprintf("very deep nesting detected (%d levels)", analysis.MaxDepth))
	}
	if analysis.ConfidenceScore < cfg.LowConfidence {
		warnings = append(warnings,
			fmt.Sprintf("low structure confidence (%.0f/100)", analysis.ConfidenceScore))
	}
	if ratio := float64(blocked) / float64(analysis.TotalFiles); ratio > 0.25 {
		warnings = append(warnings,
			fmt.Sprintf("%.0f%% of files would be blocked", ratio*100))
	}
	return warnings
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
