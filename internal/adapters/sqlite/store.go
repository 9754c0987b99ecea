package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"workshop/internal/domain"
	"workshop/internal/ports"
)

// Store implements ports.ProjectStore on SQLite. Project rows live in
// <library>/workshop.db; imported file bytes are copied under
// <library>/projects/<id>/ preserving their relative paths.
type Store struct {
	db          *sql.DB
	libraryPath string
}

// Ensure Store implements ProjectStore
var _ ports.ProjectStore = (*Store)(nil)

// Open initializes the store under the given library path, creating the
// directory and schema as needed.
func Open(libraryPath string) (*Store, error) {
	// Expand ~ in path
	if strings.HasPrefix(libraryPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		libraryPath = filepath.Join(home, libraryPath[1:])
	}

	if err := os.MkdirAll(libraryPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create library directory: %w", err)
	}

	dbPath := filepath.Join(libraryPath, "workshop.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			tags TEXT NOT NULL,
			original_root TEXT NOT NULL,
			structure TEXT NOT NULL,
			imported_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS project_files (
			project_id TEXT NOT NULL,
			rel_path TEXT NOT NULL,
			source_path TEXT NOT NULL,
			size INTEGER NOT NULL,
			PRIMARY KEY (project_id, rel_path)
		);
		CREATE INDEX IF NOT EXISTS idx_files_project ON project_files(project_id);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	return &Store{db: db, libraryPath: libraryPath}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateProject records a new project row and returns its ID.
func (s *Store) CreateProject(ctx context.Context, name string, tags []string, meta domain.ProjectMetadata) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, tags, original_root, structure, imported_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, name, strings.Join(tags, ","), meta.OriginalRootPath, meta.Structure.String(), meta.ImportedAt.Unix())
	if err != nil {
		return "", fmt.Errorf("failed to create project: %w", err)
	}
	return id, nil
}

// LinkFile copies one source file into the project tree and records it.
func (s *Store) LinkFile(ctx context.Context, projectID, relPath, sourcePath string) error {
	destPath := filepath.Join(s.libraryPath, "projects", projectID, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	size, err := copyFile(sourcePath, destPath)
	if err != nil {
		return fmt.Errorf("failed to copy file: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO project_files (project_id, rel_path, source_path, size)
		VALUES (?, ?, ?, ?)
	`, projectID, relPath, sourcePath, size)
	if err != nil {
		return fmt.Errorf("failed to record file: %w", err)
	}
	return nil
}

// ListProjects returns all projects ordered by import time, newest first.
func (s *Store) ListProjects(ctx context.Context) ([]domain.ProjectRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, tags, original_root, structure, imported_at
		FROM projects
		ORDER BY imported_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var records []domain.ProjectRecord
	for rows.Next() {
		var rec domain.ProjectRecord
		var tags, structure string
		var importedAt int64
		if err := rows.Scan(&rec.ID, &rec.Name, &tags, &rec.Metadata.OriginalRootPath, &structure, &importedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		if tags != "" {
			rec.Tags = strings.Split(tags, ",")
		}
		rec.Metadata.Structure = domain.ParseStructureType(structure)
		rec.Metadata.ImportedAt = time.Unix(importedAt, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ProjectFileCount returns how many files are linked to a project.
func (s *Store) ProjectFileCount(ctx context.Context, projectID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_files WHERE project_id = ?`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count files: %w", err)
	}
	return count, nil
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		os.Remove(dst)
		return 0, err
	}
	if err := out.Close(); err != nil {
		return 0, err
	}
	return n, nil
}
