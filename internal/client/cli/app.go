package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/dmitrijs2005/bucketdrive/internal/client/client"
	"github.com/dmitrijs2005/bucketdrive/internal/client/config"
	"github.com/dmitrijs2005/bucketdrive/internal/client/repositories/folders"
	"github.com/dmitrijs2005/bucketdrive/internal/drive/session"
	"github.com/dmitrijs2005/bucketdrive/internal/filex"
	"github.com/dmitrijs2005/bucketdrive/internal/logging"
	"github.com/dmitrijs2005/bucketdrive/internal/shared"
	"github.com/dmitrijs2005/bucketdrive/internal/store"

	_ "modernc.org/sqlite"
)

// App wires the configuration, the object store client, the local
// folder index and the drive session together behind the REPL.
type App struct {
	config  *config.Config
	session *session.Session
	log     logging.Logger
	db      *sql.DB
	reader  *bufio.Reader

	mu sync.Mutex
	// files handed to upload tasks stay open for the task's lifetime;
	// they are closed on dismiss and on shutdown
	openFiles map[string]*os.File
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	if c.AccessKeyID != "" && c.SecretAccessKey == "" {
		secret, err := GetSecret(os.Stdout, "Enter secret access key")
		if err != nil {
			return nil, err
		}
		c.SecretAccessKey = string(secret)
		shared.WipeByteArray(secret)
	}

	st, err := store.NewS3Client(ctx, store.Options{
		Region:          c.Region,
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		BaseEndpoint:    c.BaseEndpoint,
		DisableTagging:  c.DisableTagging,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing store client: %w", err)
	}

	if err := filex.EnsureParentDir(c.IndexDBPath); err != nil {
		return nil, err
	}
	db, err := client.InitDatabase(ctx, c.IndexDBPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	sess := session.NewSession(st, folders.NewSQLiteRepository(db), session.Params{
		Bucket:    c.Bucket,
		BucketURL: c.BucketURL,
		URLTTL:    c.SignedURLTTL,
	}, log)

	return &App{
		config:    c,
		session:   sess,
		log:       log,
		db:        db,
		reader:    bufio.NewReader(os.Stdin),
		openFiles: make(map[string]*os.File),
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.session.Open(ctx); err != nil {
		return fmt.Errorf("opening bucket %s: %w", a.config.Bucket, err)
	}

	fmt.Printf("bucketdrive CLI, bucket %q (type 'help' for commands)\n", a.config.Bucket)
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
	return nil
}

// Close releases the database handle and any files still owned by
// upload tasks.
func (a *App) Close() {
	a.mu.Lock()
	for id, f := range a.openFiles {
		f.Close()
		delete(a.openFiles, id)
	}
	a.mu.Unlock()

	if a.db != nil {
		a.db.Close()
	}
}

func (a *App) status() string {
	path, ok := a.session.CurrentPath()
	if !ok {
		return a.config.Bucket
	}
	return a.config.Bucket + ":/" + path
}

func (a *App) trackFile(id string, f *os.File) {
	a.mu.Lock()
	a.openFiles[id] = f
	a.mu.Unlock()
}

func (a *App) releaseFile(id string) {
	a.mu.Lock()
	if f, ok := a.openFiles[id]; ok {
		f.Close()
		delete(a.openFiles, id)
	}
	a.mu.Unlock()
}
