package cli

import (
	"context"
	"fmt"
)

// Ls refreshes the current folder and prints its subfolders and files.
func (a *App) Ls(ctx context.Context) error {
	if err := a.session.Refresh(ctx); err != nil {
		return err
	}

	folders := a.session.Folders()
	files := a.session.Files()

	for _, f := range folders {
		printlnFn(fmt.Sprintf("  %s/", f.Name))
	}
	for _, f := range files {
		printlnFn(fmt.Sprintf("  %-40s %10d  %s", f.Name, f.Size, f.ContentType))
	}
	if len(folders) == 0 && len(files) == 0 {
		printlnFn("  (empty)")
	}
	return nil
}

func (a *App) Pwd(ctx context.Context) error {
	path, ok := a.session.CurrentPath()
	if !ok {
		return fmt.Errorf("no folder is open")
	}
	printlnFn("/" + path)
	return nil
}
