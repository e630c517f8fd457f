package analytics

import "context"

// SnapshotStore port (interface untuk penyimpanan export)
type SnapshotStore interface {
	// UploadJSON stores a rendered snapshot under key and returns its URL
	UploadJSON(ctx context.Context, key string, data []byte) (string, error)
}
