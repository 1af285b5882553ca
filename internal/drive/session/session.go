// Package session orchestrates the drive view: current-folder
// navigation, the merged file/folder listing, upload lifecycle and
// delete/tag operations. The session is the single writer of the
// in-memory collections; everything below it only returns data.
package session

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/bucketdrive/internal/client/repositories/folders"
	"github.com/dmitrijs2005/bucketdrive/internal/common"
	"github.com/dmitrijs2005/bucketdrive/internal/drive/deleter"
	"github.com/dmitrijs2005/bucketdrive/internal/drive/folderindex"
	"github.com/dmitrijs2005/bucketdrive/internal/drive/listing"
	"github.com/dmitrijs2005/bucketdrive/internal/drive/models"
	"github.com/dmitrijs2005/bucketdrive/internal/drive/tags"
	"github.com/dmitrijs2005/bucketdrive/internal/drive/upload"
	"github.com/dmitrijs2005/bucketdrive/internal/keys"
	"github.com/dmitrijs2005/bucketdrive/internal/logging"
	"github.com/dmitrijs2005/bucketdrive/internal/mimex"
	"github.com/dmitrijs2005/bucketdrive/internal/store"
)

// Params configures a session for one bucket.
type Params struct {
	Bucket    string
	BucketURL string
	URLTTL    time.Duration
}

type uploadEntry struct {
	view models.UploadingFile
	task *upload.Task
	size int64
}

// Session is the drive orchestrator for a single bucket.
type Session struct {
	client  store.Client
	lister  *listing.Lister
	deleter *deleter.Deleter
	tagger  *tags.Editor
	index   *folderindex.Index
	log     logging.Logger

	bucket    string
	bucketURL string
	urlTTL    time.Duration

	mu      sync.Mutex
	current *models.Folder // nil until the first navigation
	files   []models.File
	folders []models.Folder
	uploads map[string]*uploadEntry
}

func NewSession(client store.Client, repo folders.Repository, p Params, log logging.Logger) *Session {
	return &Session{
		client:    client,
		lister:    listing.NewLister(client, p.Bucket, p.BucketURL, p.URLTTL),
		deleter:   deleter.NewDeleter(client, p.Bucket),
		tagger:    tags.NewEditor(client, p.Bucket),
		index:     folderindex.NewIndex(repo, p.Bucket, p.BucketURL),
		log:       log,
		bucket:    p.Bucket,
		bucketURL: p.BucketURL,
		urlTTL:    p.URLTTL,
		uploads:   make(map[string]*uploadEntry),
	}
}

// Root is the folder value representing the bucket root.
func Root(bucket, bucketURL string) *models.Folder {
	return &models.Folder{FullPath: "", Name: "", BucketName: bucket, BucketURL: bucketURL}
}

// Open navigates to the bucket root.
func (s *Session) Open(ctx context.Context) error {
	return s.ChangeFolder(ctx, Root(s.bucket, s.bucketURL))
}

// ChangeFolder makes f the current folder, invalidates the cached
// listing and loads a fresh one.
func (s *Session) ChangeFolder(ctx context.Context, f *models.Folder) error {
	s.mu.Lock()
	s.current = f
	s.files = nil
	s.folders = nil
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// Refresh reloads the current folder from both sources of truth: the
// remote delimiter listing and the local folder index, fetched
// concurrently. Remote common prefixes are authoritative; an index
// entry is added to the view only when no remote prefix shares its
// path.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()
	if cur == nil {
		return fmt.Errorf("no folder is open")
	}

	var (
		files    []models.File
		prefixes []string
		indexed  []*models.Folder
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		files, prefixes, err = s.lister.List(gctx, cur.FullPath)
		return err
	})
	g.Go(func() error {
		var err error
		indexed, err = s.index.ChildrenOf(gctx, cur.FullPath, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	remote := make(map[string]struct{}, len(prefixes))
	merged := make([]models.Folder, 0, len(prefixes)+len(indexed))
	for _, cp := range prefixes {
		remote[cp] = struct{}{}
		merged = append(merged, models.Folder{
			FullPath:   cp,
			Name:       keys.LeafName(cp),
			Parent:     cur.FullPath,
			BucketName: s.bucket,
			BucketURL:  s.bucketURL,
		})
	}
	for _, f := range indexed {
		if _, ok := remote[f.FullPath]; ok {
			continue
		}
		merged = append(merged, *f)
	}

	s.mu.Lock()
	s.files = files
	s.folders = merged
	s.mu.Unlock()

	s.log.Debug(ctx, "folder refreshed",
		"path", cur.FullPath, "files", len(files), "folders", len(merged))
	return nil
}

// CurrentPath returns the open folder's prefix; ok is false before the
// first navigation.
func (s *Session) CurrentPath() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return "", false
	}
	return s.current.FullPath, true
}

// Files returns a snapshot of the current folder's files.
func (s *Session) Files() []models.File {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.File(nil), s.files...)
}

// Folders returns a snapshot of the current folder's subfolders.
func (s *Session) Folders() []models.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Folder(nil), s.folders...)
}

// FolderByName finds a subfolder of the current view by name.
func (s *Session) FolderByName(name string) (*models.Folder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.folders {
		if s.folders[i].Name == name {
			f := s.folders[i]
			return &f, true
		}
	}
	return nil, false
}

// FileByName finds a file of the current view by name.
func (s *Session) FileByName(name string) (*models.File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.files {
		if s.files[i].Name == name {
			f := s.files[i]
			return &f, true
		}
	}
	return nil, false
}

// CreateFolder adds a user-created folder under the current folder and
// persists it in the index.
func (s *Session) CreateFolder(ctx context.Context, name string) (*models.Folder, error) {
	s.mu.Lock()
	cur := s.current
	for i := range s.folders {
		if s.folders[i].Name == name {
			s.mu.Unlock()
			return nil, common.ErrDuplicateName
		}
	}
	s.mu.Unlock()
	if cur == nil {
		return nil, fmt.Errorf("no folder is open")
	}

	f, err := s.index.Add(ctx, cur.FullPath, name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.folders = append(s.folders, *f)
	s.mu.Unlock()
	return f, nil
}

// Upload validates the file name against the currently loaded view and
// starts a multipart upload. Collisions with files not yet loaded are
// not caught; the store simply overwrites on complete.
func (s *Session) Upload(ctx context.Context, name string, src io.ReaderAt, size int64) (*models.UploadingFile, error) {
	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()
	if cur == nil {
		return nil, fmt.Errorf("no folder is open")
	}

	key, err := keys.KeyFor(cur.FullPath, name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.files {
		if s.files[i].Name == name {
			s.mu.Unlock()
			return nil, common.ErrDuplicateName
		}
	}
	for _, u := range s.uploads {
		if u.view.Key == key && u.view.State != models.UploadFailed {
			s.mu.Unlock()
			return nil, common.ErrDuplicateName
		}
	}
	s.mu.Unlock()

	task := upload.NewTask(s.client, s.bucket, key, name, mimex.ContentType(name), src, size)
	entry := &uploadEntry{
		view: models.UploadingFile{
			ID:    task.ID(),
			Name:  name,
			Key:   key,
			State: models.UploadRunning,
		},
		task: task,
		size: size,
	}

	s.mu.Lock()
	s.uploads[task.ID()] = entry
	s.mu.Unlock()

	task.Start(ctx)
	go s.consumeEvents(task)

	s.log.Info(ctx, "upload started", "id", task.ID(), "key", key, "size", size)
	view := entry.view
	return &view, nil
}

// consumeEvents applies one task's lifecycle events to the session
// state. On completion the finished file joins the listing with a
// freshly minted signed URL; nothing is shown as a file before the
// store has fully committed it.
func (s *Session) consumeEvents(task *upload.Task) {
	ctx := context.Background()

	for e := range task.Events() {
		switch e.Type {
		case upload.EventProgress, upload.EventInitiated:
			s.updateUpload(e.TaskID, func(u *uploadEntry) {
				u.view.State = models.UploadRunning
				if e.Type == upload.EventProgress {
					u.view.Progress = e.Percent
				}
			})

		case upload.EventPaused:
			s.updateUpload(e.TaskID, func(u *uploadEntry) {
				u.view.State = models.UploadPaused
			})

		case upload.EventResumed:
			s.updateUpload(e.TaskID, func(u *uploadEntry) {
				u.view.State = models.UploadRunning
			})

		case upload.EventFailed:
			s.updateUpload(e.TaskID, func(u *uploadEntry) {
				u.view.State = models.UploadFailed
				u.view.Error = e.Err.Error()
			})
			s.log.Error(ctx, "upload failed", "id", e.TaskID, "err", e.Err)

		case upload.EventCompleted:
			s.finishUpload(ctx, task)
		}
	}
}

func (s *Session) updateUpload(id string, fn func(*uploadEntry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.uploads[id]; ok {
		fn(u)
	}
}

func (s *Session) finishUpload(ctx context.Context, task *upload.Task) {
	s.mu.Lock()
	entry, ok := s.uploads[task.ID()]
	s.mu.Unlock()
	if !ok {
		return
	}

	url, err := s.client.SignedGetURL(ctx, s.bucket, task.Key(), s.urlTTL)
	if err != nil {
		// the object is committed; the URL can be re-minted on refresh
		s.log.Warn(ctx, "signing url after upload", "key", task.Key(), "err", err)
	}

	file := models.File{
		FullPath:    task.Key(),
		Name:        task.Name(),
		Parent:      keys.ParentPrefix(task.Key()),
		Size:        entry.size,
		ContentType: mimex.ContentType(task.Name()),
		CreatedAt:   time.Now().UTC(),
		BucketName:  s.bucket,
		BucketURL:   s.bucketURL,
		URL:         url,
	}

	s.mu.Lock()
	delete(s.uploads, task.ID())
	if s.current != nil && s.current.FullPath == file.Parent {
		s.files = append(s.files, file)
	}
	s.mu.Unlock()

	s.log.Info(ctx, "upload completed", "id", task.ID(), "key", task.Key())
}

// Uploads returns a snapshot of the active upload set.
func (s *Session) Uploads() []models.UploadingFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.UploadingFile, 0, len(s.uploads))
	for _, u := range s.uploads {
		out = append(out, u.view)
	}
	return out
}

// PauseUpload pauses the upload with the given id.
func (s *Session) PauseUpload(id string) error {
	t, err := s.taskByID(id)
	if err != nil {
		return err
	}
	return t.Pause()
}

// ResumeUpload resumes the upload with the given id.
func (s *Session) ResumeUpload(id string) error {
	t, err := s.taskByID(id)
	if err != nil {
		return err
	}
	return t.Resume()
}

// DismissUpload drops a failed upload from the active set.
func (s *Session) DismissUpload(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.uploads[id]
	if !ok {
		return common.ErrNotFound
	}
	if u.view.State != models.UploadFailed {
		return fmt.Errorf("upload %s is still active", id)
	}
	delete(s.uploads, id)
	return nil
}

func (s *Session) taskByID(id string) (*upload.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.uploads[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u.task, nil
}

// RemoveFile deletes a file: the local entry is removed tentatively,
// then the remote delete runs; on failure the entry is restored so the
// view never silently diverges from the store.
func (s *Session) RemoveFile(ctx context.Context, fullPath string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.files {
		if s.files[i].FullPath == fullPath {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return common.ErrNotFound
	}
	removed := s.files[idx]
	s.files = append(s.files[:idx], s.files[idx+1:]...)
	s.mu.Unlock()

	if err := s.client.DeleteObject(ctx, s.bucket, fullPath); err != nil {
		s.mu.Lock()
		s.files = append(s.files, removed)
		s.mu.Unlock()
		return fmt.Errorf("deleting %s: %w", removed.Name, err)
	}
	return nil
}

// RemoveFolder recursively deletes everything under the folder's
// prefix, then prunes the folder index and the loaded view. A failed
// delete leaves the view untouched; the caller may refresh and retry.
func (s *Session) RemoveFolder(ctx context.Context, f *models.Folder) error {
	if err := s.deleter.DeleteTree(ctx, f.FullPath); err != nil {
		return err
	}
	if err := s.index.Remove(ctx, f.FullPath); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.folders {
		if s.folders[i].FullPath == f.FullPath {
			s.folders = append(s.folders[:i], s.folders[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.log.Info(ctx, "folder removed", "path", f.FullPath)
	return nil
}

// ListTags lists a file's tags.
func (s *Session) ListTags(ctx context.Context, file *models.File) ([]models.Tag, error) {
	return s.tagger.List(ctx, file)
}

// AddTag adds a tag to a file.
func (s *Session) AddTag(ctx context.Context, file *models.File, key, value string) error {
	return s.tagger.Add(ctx, file, key, value)
}

// RemoveTag removes a tag from a file.
func (s *Session) RemoveTag(ctx context.Context, file *models.File, key string) error {
	return s.tagger.Remove(ctx, file, key)
}

// EditTag replaces one of a file's tags.
func (s *Session) EditTag(ctx context.Context, file *models.File, prevTag, newTag models.Tag) error {
	return s.tagger.Edit(ctx, file, prevTag, newTag)
}
