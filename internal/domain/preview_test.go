package domain

import (
	"strings"
	"testing"
)

func previewFixture() (*ScanResult, LibraryStructureAnalysis, DetectorConfig) {
	cfg := DefaultDetectorConfig()
	r := NewScanResult("/src/kit")
	addFolder(r, ".", 0, map[string]int{"md": 1})
	addFolder(r, "STL_Files", 1, map[string]int{"stl": 2})
	r.AddFile(Classify("/src/kit/README.md", "README.md", 100, ClassifyOptions{}))
	r.AddFile(Classify("/src/kit/STL_Files/hull.stl", "STL_Files/hull.stl", 1000, ClassifyOptions{}))
	r.AddFile(Classify("/src/kit/STL_Files/deck.stl", "STL_Files/deck.stl", 2000, ClassifyOptions{}))
	r.AddFile(Classify("/src/kit/setup.exe", "setup.exe", 5000, ClassifyOptions{}))
	r.Normalize()
	return r, Analyze(r, cfg), cfg
}

func TestBuildPreviewPartition(t *testing.T) {
	r, analysis, cfg := previewFixture()
	p := BuildPreview(r, analysis, cfg)

	if len(p.Supported) != 2 {
		t.Errorf("supported = %d, want 2", len(p.Supported))
	}
	if len(p.Blocked) != 1 {
		t.Errorf("blocked = %d, want 1", len(p.Blocked))
	}
	if len(p.Metadata) != 1 {
		t.Errorf("metadata = %d, want 1", len(p.Metadata))
	}
	if p.Blocked[0].RelPath != "setup.exe" || p.Blocked[0].BlockReason != "executable" {
		t.Errorf("blocked file = %+v, want setup.exe/executable", p.Blocked[0])
	}
}

func TestBuildPreviewEstimateExcludesBlockedAndMetadata(t *testing.T) {
	r, analysis, cfg := previewFixture()
	p := BuildPreview(r, analysis, cfg)

	// Only the two stl files count: 1000 + 2000.
	if p.EstimatedBytes != 3000 {
		t.Errorf("estimated bytes = %d, want 3000", p.EstimatedBytes)
	}
}

func TestBuildPreviewIsRepeatable(t *testing.T) {
	r, analysis, cfg := previewFixture()
	first := BuildPreview(r, analysis, cfg)
	second := BuildPreview(r, analysis, cfg)

	if first.EstimatedBytes != second.EstimatedBytes ||
		len(first.Supported) != len(second.Supported) ||
		first.Tree.Render() != second.Tree.Render() {
		t.Error("re-running the preview changed the result")
	}
}

func TestBuildFolderTreeRendering(t *testing.T) {
	folders := []FolderStat{
		{RelPath: ".", Name: "kit", Depth: 0, FileCount: 2},
		{RelPath: "STL_Files", Name: "STL_Files", Depth: 1, FileCount: 2},
		{RelPath: "docs", Name: "docs", Depth: 1, FileCount: 1},
		{RelPath: "docs/manuals", Name: "manuals", Depth: 2, FileCount: 3},
	}
	tree := BuildFolderTree(folders)

	if len(tree.Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(tree.Children))
	}
	// Sorted by name: STL_Files before docs.
	if tree.Children[0].Name != "STL_Files" || tree.Children[1].Name != "docs" {
		t.Errorf("children order = [%s %s], want [STL_Files docs]", tree.Children[0].Name, tree.Children[1].Name)
	}

	rendered := tree.Render()
	for _, want := range []string{"/ (2 files)", "STL_Files (2 files)", "  docs (1 files)", "    manuals (3 files)"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendering missing %q:\n%s", want, rendered)
		}
	}
}

func TestBuildFolderTreeCreatesMissingParents(t *testing.T) {
	// A folder list missing intermediate entries still yields a
	// connected tree.
	folders := []FolderStat{
		{RelPath: ".", Name: "kit", Depth: 0},
		{RelPath: "a/b/c", Name: "c", Depth: 3, FileCount: 1},
	}
	tree := BuildFolderTree(folders)

	if len(tree.Children) != 1 || tree.Children[0].Name != "a" {
		t.Fatalf("expected intermediate node a, got %+v", tree.Children)
	}
	b := tree.Children[0].Children
	if len(b) != 1 || b[0].Name != "b" || len(b[0].Children) != 1 || b[0].Children[0].Name != "c" {
		t.Error("intermediate chain a/b/c not built")
	}
}

func TestPreviewWarnings(t *testing.T) {
	cfg := DefaultDetectorConfig()

	t.Run("no metadata and high blocked ratio", func(t *testing.T) {
		r := NewScanResult("/src/w")
		addFolder(r, ".", 0, map[string]int{"exe": 1, "stl": 1})
		r.AddFile(Classify("/src/w/run.exe", "run.exe", 10, ClassifyOptions{}))
		r.AddFile(Classify("/src/w/part.stl", "part.stl", 10, ClassifyOptions{}))
		r.Normalize()
		p := BuildPreview(r, Analyze(r, cfg), cfg)

		wantSubstrings := []string{"no metadata", "blocked", "confidence"}
		for _, want := range wantSubstrings {
			found := false
			for _, w := range p.Warnings {
				if strings.Contains(w, want) {
					found = true
				}
			}
			if !found {
				t.Errorf("warnings %v missing one containing %q", p.Warnings, want)
			}
		}
	})

	t.Run("scan warnings are carried over", func(t *testing.T) {
		r := NewScanResult("/src/w")
		addFolder(r, ".", 0, nil)
		r.Warnings = append(r.Warnings, "unreadable folder: locked")
		p := BuildPreview(r, Analyze(r, cfg), cfg)

		found := false
		for _, w := range p.Warnings {
			if w == "unreadable folder: locked" {
				found = true
			}
		}
		if !found {
			t.Errorf("scan warning not carried into preview: %v", p.Warnings)
		}
	})
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 * 1024 * 1024, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
