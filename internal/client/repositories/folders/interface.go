// Package folders persists user-created folder entries. Object stores
// have no empty-folder object, so folders the user created but has not
// put files into exist only in this local index.
package folders

import (
	"context"

	"github.com/dmitrijs2005/bucketdrive/internal/drive/models"
)

// Repository describes the folder index storage operations.
// Implementations are backed by a local SQLite database.
type Repository interface {
	// Add inserts a folder entry into the bucket-scoped index.
	// Re-adding an existing path is a no-op.
	Add(ctx context.Context, folder *models.Folder) error

	// Remove deletes the entry with the given path and every entry
	// nested under it (strict-prefix descendant pruning).
	Remove(ctx context.Context, bucket, fullPath string) error

	// ListChildren returns entries whose parent equals parentFullPath,
	// ordered by name.
	ListChildren(ctx context.Context, bucket, parentFullPath string) ([]*models.Folder, error)
}
