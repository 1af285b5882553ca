// Package deleter removes every object under a prefix, including the
// contents of nested "folders", issuing one batched delete per listing
// page.
package deleter

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bucketdrive/internal/keys"
	"github.com/dmitrijs2005/bucketdrive/internal/store"
)

// Deleter walks a prefix tree with an explicit worklist (bounded stack
// depth on pathologically deep hierarchies) and batch-deletes each
// page's objects. There is no transactional guarantee: a failed batch
// aborts the walk and leaves the remainder undeleted for the caller to
// reconcile.
type Deleter struct {
	client store.Client
	bucket string
}

func NewDeleter(client store.Client, bucket string) *Deleter {
	return &Deleter{client: client, bucket: bucket}
}

// DeleteTree deletes all objects under prefix. Deleting an empty or
// nonexistent prefix is a no-op. On failure the error is surfaced and
// the walk stops; already-deleted pages stay deleted.
func (d *Deleter) DeleteTree(ctx context.Context, prefix string) error {
	worklist := []string{prefix}

	for len(worklist) > 0 {
		p := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		token := ""
		for {
			page, err := d.client.ListObjects(ctx, store.ListRequest{
				Bucket:            d.bucket,
				Prefix:            p,
				Delimiter:         keys.Delimiter,
				ContinuationToken: token,
			})
			if err != nil {
				return fmt.Errorf("listing %q for delete: %w", p, err)
			}

			worklist = append(worklist, page.CommonPrefixes...)

			if err := d.deletePage(ctx, page.Objects); err != nil {
				return err
			}

			if !page.IsTruncated {
				break
			}
			token = page.NextContinuationToken
		}
	}
	return nil
}

// deletePage issues batch deletes for one page's objects, chunked at
// the store's per-request limit. Folder marker objects are deleted
// like any other key.
func (d *Deleter) deletePage(ctx context.Context, objects []store.Object) error {
	if len(objects) == 0 {
		return nil
	}
	objKeys := make([]string, 0, len(objects))
	for _, obj := range objects {
		objKeys = append(objKeys, obj.Key)
	}

	for len(objKeys) > 0 {
		n := len(objKeys)
		if n > store.MaxDeleteBatch {
			n = store.MaxDeleteBatch
		}
		if err := d.client.DeleteObjects(ctx, d.bucket, objKeys[:n]); err != nil {
			return fmt.Errorf("deleting %d objects: %w", n, err)
		}
		objKeys = objKeys[n:]
	}
	return nil
}
