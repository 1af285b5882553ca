package folders

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bucketdrive/internal/dbx"
	"github.com/dmitrijs2005/bucketdrive/internal/drive/models"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, f *models.Folder) error {

	query := `INSERT INTO folders (bucket, full_path, name, parent, bucket_url, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(bucket, full_path) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		f.BucketName, f.FullPath, f.Name, f.Parent, f.BucketURL, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert folder: %w", err)
	}

	return nil
}

// Remove deletes the target entry and its descendants. Descendants
// are matched by strict path prefix in Go rather than SQL LIKE, since
// folder names may legally contain the LIKE wildcards '%' and '_'.
func (r *SQLiteRepository) Remove(ctx context.Context, bucket, fullPath string) error {

	rows, err := r.db.QueryContext(ctx,
		`SELECT full_path FROM folders WHERE bucket = ?`, bucket)
	if err != nil {
		return fmt.Errorf("failed to select folders: %w", err)
	}
	defer rows.Close()

	var doomed []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return err
		}
		if p == fullPath || strings.HasPrefix(p, fullPath) {
			doomed = append(doomed, p)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(doomed) == 0 {
		return nil
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, p := range doomed {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM folders WHERE bucket = ? AND full_path = ?`, bucket, p); err != nil {
				return fmt.Errorf("failed to delete folder %s: %w", p, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) ListChildren(ctx context.Context, bucket, parentFullPath string) ([]*models.Folder, error) {

	query := `SELECT bucket, full_path, name, parent, bucket_url, created_at
			FROM folders WHERE bucket = ? AND parent = ? ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, bucket, parentFullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to select folders: %w", err)
	}
	defer rows.Close()

	var result []*models.Folder
	for rows.Next() {
		item := &models.Folder{}
		err := rows.Scan(&item.BucketName, &item.FullPath, &item.Name, &item.Parent,
			&item.BucketURL, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
