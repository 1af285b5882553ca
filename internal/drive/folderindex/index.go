// Package folderindex overlays locally persisted folder entries onto
// the remote-derived hierarchy. Remote common prefixes are
// authoritative: an index entry sharing a remote prefix's path is
// suppressed from the merged view but kept in the index, so re-merging
// is idempotent.
package folderindex

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bucketdrive/internal/client/repositories/folders"
	"github.com/dmitrijs2005/bucketdrive/internal/drive/models"
	"github.com/dmitrijs2005/bucketdrive/internal/keys"
)

// Index is the bucket-scoped folder overlay.
type Index struct {
	repo      folders.Repository
	bucket    string
	bucketURL string
	now       func() time.Time
}

func NewIndex(repo folders.Repository, bucket, bucketURL string) *Index {
	return &Index{repo: repo, bucket: bucket, bucketURL: bucketURL, now: time.Now}
}

// Add creates a folder entry named name under parentPath and persists
// it. The folder name is validated like a file name.
func (x *Index) Add(ctx context.Context, parentPath, name string) (*models.Folder, error) {
	if err := keys.ValidateName(name); err != nil {
		return nil, err
	}

	f := &models.Folder{
		FullPath:   keys.ChildPrefix(parentPath, name),
		Name:       name,
		Parent:     parentPath,
		BucketName: x.bucket,
		BucketURL:  x.bucketURL,
		CreatedAt:  x.now().UTC(),
	}
	if err := x.repo.Add(ctx, f); err != nil {
		return nil, fmt.Errorf("indexing folder %s: %w", f.FullPath, err)
	}
	return f, nil
}

// Remove deletes the entry at fullPath and every indexed descendant.
// Only paths strictly nested under fullPath are pruned; a path that
// merely contains fullPath as a substring is untouched.
func (x *Index) Remove(ctx context.Context, fullPath string) error {
	if err := x.repo.Remove(ctx, x.bucket, fullPath); err != nil {
		return fmt.Errorf("pruning folder index at %s: %w", fullPath, err)
	}
	return nil
}

// ChildrenOf returns the indexed direct children of parentPath,
// excluding entries whose path appears in the remote-derived set.
func (x *Index) ChildrenOf(ctx context.Context, parentPath string, remote map[string]struct{}) ([]*models.Folder, error) {
	children, err := x.repo.ListChildren(ctx, x.bucket, parentPath)
	if err != nil {
		return nil, fmt.Errorf("reading folder index under %s: %w", parentPath, err)
	}

	out := make([]*models.Folder, 0, len(children))
	for _, f := range children {
		if _, ok := remote[f.FullPath]; ok {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
