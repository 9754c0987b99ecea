package ports

import (
	"context"

	"workshop/internal/domain"
)

// ProjectStore is the persistence collaborator for committed imports.
// The core calls it only inside the commit phase; the dry run never
// touches it.
type ProjectStore interface {
	// CreateProject records a new project and returns its ID.
	CreateProject(ctx context.Context, name string, tags []string, meta domain.ProjectMetadata) (string, error)

	// LinkFile brings one source file into the project under the given
	// relative path. Per-file failures are reported to the caller, not
	// accumulated here.
	LinkFile(ctx context.Context, projectID, relPath, sourcePath string) error

	// ListProjects returns all known projects.
	ListProjects(ctx context.Context) ([]domain.ProjectRecord, error)

	Close() error
}
