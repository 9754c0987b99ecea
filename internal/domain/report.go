package domain

import (
	"fmt"
	"strings"
	"time"
)

// TagImportedProject marks projects created by the import pipeline, as
// opposed to projects assembled file by file.
const TagImportedProject = "imported_project"

// ProjectMetadata is the metadata block recorded on an imported project.
type ProjectMetadata struct {
	OriginalRootPath string
	ImportedAt       time.Time
	Structure        StructureType
}

// ProjectRecord identifies a project held by the store.
type ProjectRecord struct {
	ID       string
	Name     string
	Tags     []string
	Metadata ProjectMetadata
}

// ImportReport summarizes one committed import. Immutable once
// produced; persistence is the caller's responsibility.
type ImportReport struct {
	ProjectID        string
	ProjectName      string
	ImportedAt       time.Time
	Structure        StructureType
	FilesImported    int
	FilesBlocked     int
	FoldersPreserved int
	StorageBytes     int64
	Duration         time.Duration
	BlockedPaths     []string
	Errors           []string // Per-file link failures; never aborts the batch
}

// Summary renders the report for terminal output.
func (r *ImportReport) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Imported project: %s (%s)\n", r.ProjectName, r.ProjectID)
	fmt.Fprintf(&sb, "  structure:  %s\n", r.Structure)
	fmt.Fprintf(&sb, "  imported:   %d files (%s)\n", r.FilesImported, FormatBytes(r.StorageBytes))
	fmt.Fprintf(&sb, "  blocked:    %d files\n", r.FilesBlocked)
	fmt.Fprintf(&sb, "  folders:    %d preserved\n", r.FoldersPreserved)
	fmt.Fprintf(&sb, "  duration:   %s\n", r.Duration.Round(time.Millisecond))
	if len(r.Errors) > 0 {
		fmt.Fprintf(&sb, "  errors:     %d\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(&sb, "    - %s\n", e)
		}
	}
	return sb.String()
}
