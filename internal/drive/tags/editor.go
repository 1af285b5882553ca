// Package tags edits a file's tag set through read-modify-write
// cycles against the store's tagging API.
package tags

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bucketdrive/internal/common"
	"github.com/dmitrijs2005/bucketdrive/internal/drive/models"
	"github.com/dmitrijs2005/bucketdrive/internal/store"
)

// Editor mutates tag sets one file at a time. The read-modify-write
// cycle is not atomic: concurrent editors of the same file race and
// the last writer wins.
type Editor struct {
	client store.Client
	bucket string
}

func NewEditor(client store.Client, bucket string) *Editor {
	return &Editor{client: client, bucket: bucket}
}

// List fetches the current tag set of a file. When the store variant
// does not support tagging the result is empty, not an error.
func (e *Editor) List(ctx context.Context, file *models.File) ([]models.Tag, error) {
	if !e.client.SupportsTagging() {
		return nil, nil
	}
	tags, err := e.client.GetObjectTagging(ctx, e.bucket, file.FullPath)
	if err != nil {
		return nil, fmt.Errorf("listing tags of %s: %w", file.Name, err)
	}
	return tags, nil
}

// Add appends {key,value} to the file's tag set and writes the full
// set back. A key that is blank after trimming is rejected with
// common.ErrBlankTagKey before any remote call. Duplicate keys are
// allowed at this layer; the store applies last-wins semantics.
func (e *Editor) Add(ctx context.Context, file *models.File, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return common.ErrBlankTagKey
	}

	current, err := e.List(ctx, file)
	if err != nil {
		return err
	}

	next := append(current, models.Tag{Key: key, Value: value})
	if err := e.client.PutObjectTagging(ctx, e.bucket, file.FullPath, next); err != nil {
		return fmt.Errorf("adding tag %q to %s: %w", key, file.Name, err)
	}
	return nil
}

// Remove filters entries matching key out of the file's tag set and
// writes the filtered set back. Removing an absent key writes the set
// unchanged, so calling Remove twice equals calling it once.
func (e *Editor) Remove(ctx context.Context, file *models.File, key string) error {
	current, err := e.List(ctx, file)
	if err != nil {
		return err
	}

	next := make([]models.Tag, 0, len(current))
	for _, t := range current {
		if t.Key != key {
			next = append(next, t)
		}
	}
	if err := e.client.PutObjectTagging(ctx, e.bucket, file.FullPath, next); err != nil {
		return fmt.Errorf("removing tag %q from %s: %w", key, file.Name, err)
	}
	return nil
}

// Edit replaces prevTag with newTag as a remove followed by an add.
// If the add step fails, the previous tag is restored best-effort;
// when the compensating add also fails, the file ends up with neither
// tag and both errors are reported.
func (e *Editor) Edit(ctx context.Context, file *models.File, prevTag, newTag models.Tag) error {
	if err := e.Remove(ctx, file, prevTag.Key); err != nil {
		return err
	}

	if err := e.Add(ctx, file, newTag.Key, newTag.Value); err != nil {
		if restoreErr := e.Add(ctx, file, prevTag.Key, prevTag.Value); restoreErr != nil {
			return fmt.Errorf("editing tag %q failed and restore failed: %w (restore: %w)",
				prevTag.Key, err, restoreErr)
		}
		return fmt.Errorf("editing tag %q: %w", prevTag.Key, err)
	}
	return nil
}
