// Package listing reconstructs one level of the virtual folder
// hierarchy from a delimiter listing, hiding pagination from callers.
package listing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bucketdrive/internal/drive/models"
	"github.com/dmitrijs2005/bucketdrive/internal/keys"
	"github.com/dmitrijs2005/bucketdrive/internal/mimex"
	"github.com/dmitrijs2005/bucketdrive/internal/store"
)

// Lister lists the immediate children of a prefix. Truncated pages are
// followed transparently: callers always receive the logically
// complete listing for one folder visit.
type Lister struct {
	client     store.Client
	bucket     string
	bucketURL  string
	urlTTL     time.Duration
}

func NewLister(client store.Client, bucket, bucketURL string, urlTTL time.Duration) *Lister {
	return &Lister{client: client, bucket: bucket, bucketURL: bucketURL, urlTTL: urlTTL}
}

// List returns the files directly under prefix and the child folder
// prefixes, accumulated across all continuation pages without
// duplicates. An empty prefix lists the bucket root; a prefix with no
// children yields empty results, not an error.
func (l *Lister) List(ctx context.Context, prefix string) ([]models.File, []string, error) {
	var (
		files    []models.File
		prefixes []string
		seen     = make(map[string]struct{})
		token    string
	)

	for {
		page, err := l.client.ListObjects(ctx, store.ListRequest{
			Bucket:            l.bucket,
			Prefix:            prefix,
			Delimiter:         keys.Delimiter,
			ContinuationToken: token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("listing %q: %w", prefix, err)
		}

		for _, obj := range page.Objects {
			// skip the folder marker for the prefix itself
			if obj.Key == prefix || strings.HasSuffix(obj.Key, keys.Delimiter) {
				continue
			}
			f, err := l.toFile(ctx, obj)
			if err != nil {
				return nil, nil, err
			}
			files = append(files, f)
		}

		for _, cp := range page.CommonPrefixes {
			if _, ok := seen[cp]; ok {
				continue
			}
			seen[cp] = struct{}{}
			prefixes = append(prefixes, cp)
		}

		if !page.IsTruncated {
			return files, prefixes, nil
		}
		token = page.NextContinuationToken
	}
}

func (l *Lister) toFile(ctx context.Context, obj store.Object) (models.File, error) {
	url, err := l.client.SignedGetURL(ctx, l.bucket, obj.Key, l.urlTTL)
	if err != nil {
		return models.File{}, fmt.Errorf("signing url for %s: %w", obj.Key, err)
	}
	name := keys.LeafName(obj.Key)
	return models.File{
		FullPath:    obj.Key,
		Name:        name,
		Parent:      keys.ParentPrefix(obj.Key),
		Size:        obj.Size,
		ContentType: mimex.ContentType(name),
		CreatedAt:   obj.LastModified,
		BucketName:  l.bucket,
		BucketURL:   l.bucketURL,
		URL:         url,
	}, nil
}
