package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"workshop/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testMeta(root string) domain.ProjectMetadata {
	return domain.ProjectMetadata{
		OriginalRootPath: root,
		ImportedAt:       time.Now(),
		Structure:        domain.StructureFlat,
	}
}

func TestCreateAndListProjects(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.CreateProject(ctx, "benchy kit", []string{domain.TagImportedProject}, testMeta("/src/kit"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id == "" {
		t.Fatal("empty project ID")
	}

	records, err := store.ListProjects(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("projects = %d, want 1", len(records))
	}

	rec := records[0]
	if rec.ID != id || rec.Name != "benchy kit" {
		t.Errorf("record = %+v", rec)
	}
	if len(rec.Tags) != 1 || rec.Tags[0] != domain.TagImportedProject {
		t.Errorf("tags = %v, want [%s]", rec.Tags, domain.TagImportedProject)
	}
	if rec.Metadata.OriginalRootPath != "/src/kit" {
		t.Errorf("original root = %q", rec.Metadata.OriginalRootPath)
	}
	if rec.Metadata.Structure != domain.StructureFlat {
		t.Errorf("structure = %v, want flat", rec.Metadata.Structure)
	}
}

func TestLinkFileCopiesBytes(t *testing.T) {
	library := t.TempDir()
	store, err := Open(library)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	src := filepath.Join(t.TempDir(), "hull.stl")
	if err := os.WriteFile(src, []byte("solid hull"), 0644); err != nil {
		t.Fatal(err)
	}

	id, err := store.CreateProject(ctx, "kit", []string{domain.TagImportedProject}, testMeta("/src/kit"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.LinkFile(ctx, id, "STL_Files/hull.stl", src); err != nil {
		t.Fatalf("link failed: %v", err)
	}

	dest := filepath.Join(library, "projects", id, "STL_Files", "hull.stl")
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("copied file missing: %v", err)
	}
	if string(data) != "solid hull" {
		t.Errorf("copied content = %q", data)
	}

	count, err := store.ProjectFileCount(ctx, id)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("file count = %d, want 1", count)
	}
}

func TestLinkFileMissingSource(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.CreateProject(ctx, "kit", nil, testMeta("/src/kit"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.LinkFile(ctx, id, "gone.stl", "/does/not/exist.stl"); err == nil {
		t.Error("expected an error for a missing source file")
	}

	count, err := store.ProjectFileCount(ctx, id)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("file count = %d, want 0 after failed link", count)
	}
}

func TestListProjectsEmpty(t *testing.T) {
	store := openTestStore(t)

	records, err := store.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("projects = %d, want 0", len(records))
	}
}
