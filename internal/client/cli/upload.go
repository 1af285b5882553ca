package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/bucketdrive/internal/drive/models"
)

// Up starts an upload of a local file into the current folder. The
// second argument overrides the stored name; it defaults to the local
// base name. The command returns as soon as the transfer is running;
// progress is visible through "uploads".
func (a *App) Up(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: up <path> [name]")
	}

	path := args[0]
	name := filepath.Base(path)
	if len(args) == 2 {
		name = args[1]
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	if info.IsDir() {
		f.Close()
		return fmt.Errorf("%s is a directory", path)
	}

	view, err := a.session.Upload(ctx, name, f, info.Size())
	if err != nil {
		f.Close()
		return err
	}
	a.trackFile(view.ID, f)

	printlnFn(fmt.Sprintf("uploading %s as %s (id %s)", path, name, view.ID))
	return nil
}

// Uploads prints the active upload set and reclaims file handles of
// uploads that already left it.
func (a *App) Uploads(ctx context.Context) error {
	active := a.session.Uploads()

	ids := make(map[string]struct{}, len(active))
	for _, u := range active {
		ids[u.ID] = struct{}{}
	}
	a.mu.Lock()
	for id, f := range a.openFiles {
		if _, ok := ids[id]; !ok {
			f.Close()
			delete(a.openFiles, id)
		}
	}
	a.mu.Unlock()

	if len(active) == 0 {
		printlnFn("no active uploads")
		return nil
	}
	for _, u := range active {
		line := fmt.Sprintf("  %s  %-30s %-8s %6.2f%%", u.ID, u.Name, u.State, u.Progress)
		if u.State == models.UploadFailed && u.Error != "" {
			line += "  " + u.Error
		}
		printlnFn(line)
	}
	return nil
}

func (a *App) Pause(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: pause <id>")
	}
	return a.session.PauseUpload(args[0])
}

func (a *App) Resume(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: resume <id>")
	}
	return a.session.ResumeUpload(args[0])
}

func (a *App) Dismiss(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: dismiss <id>")
	}
	if err := a.session.DismissUpload(args[0]); err != nil {
		return err
	}
	a.releaseFile(args[0])
	return nil
}
