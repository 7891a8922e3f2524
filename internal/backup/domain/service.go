package domain

import "context"

type Service interface {
	// Export snapshots the entire dataset: every product, every sale, plus
	// the export timestamp. No filtering.
	Export(ctx context.Context) (BackupData, error)
	// Import wipes both collections and restores the snapshot verbatim,
	// original identifiers included, as one atomic operation.
	Import(ctx context.Context, data BackupData) error
	// ClearAll irreversibly empties both collections.
	ClearAll(ctx context.Context) error
}
