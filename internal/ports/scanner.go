package ports

import (
	"context"

	"workshop/internal/domain"
)

// TreeScanner walks a source tree and classifies every file in it.
// Implementations must be read-only and must tolerate unreadable
// subtrees by recording warnings rather than failing.
type TreeScanner interface {
	Scan(ctx context.Context, root string) (*domain.ScanResult, error)
}
