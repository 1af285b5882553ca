package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bucketdrive/internal/drive/models"
	"github.com/dmitrijs2005/bucketdrive/internal/keys"
)

// Cd changes the current folder. Supported forms: a subfolder name
// from the current listing, ".." for the parent, "/" for the root.
func (a *App) Cd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cd <folder> | cd .. | cd /")
	}

	switch args[0] {
	case "/":
		return a.session.Open(ctx)

	case "..":
		path, ok := a.session.CurrentPath()
		if !ok {
			return fmt.Errorf("no folder is open")
		}
		parent := keys.ParentPrefix(path)
		if parent == "" {
			return a.session.Open(ctx)
		}
		return a.session.ChangeFolder(ctx, &models.Folder{
			FullPath:   parent,
			Name:       keys.LeafName(parent),
			Parent:     keys.ParentPrefix(parent),
			BucketName: a.config.Bucket,
			BucketURL:  a.config.BucketURL,
		})

	default:
		f, ok := a.session.FolderByName(args[0])
		if !ok {
			return fmt.Errorf("no such folder: %s", args[0])
		}
		return a.session.ChangeFolder(ctx, f)
	}
}

func (a *App) Mkdir(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: mkdir <name>")
	}
	f, err := a.session.CreateFolder(ctx, args[0])
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("created %s/", f.Name))
	return nil
}

// Rmdir deletes a folder with everything nested under it, after an
// explicit confirmation.
func (a *App) Rmdir(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rmdir <name>")
	}
	f, ok := a.session.FolderByName(args[0])
	if !ok {
		return fmt.Errorf("no such folder: %s", args[0])
	}

	answer, err := GetSimpleText(a.reader,
		fmt.Sprintf("Delete %s/ and everything in it? (y/N)", f.Name), outputW)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		printlnFn("cancelled")
		return nil
	}

	if err := a.session.RemoveFolder(ctx, f); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("removed %s/", f.Name))
	return nil
}
