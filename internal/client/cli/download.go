package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/bucketdrive/internal/netx"
)

// Dl downloads a file from the current folder over its signed URL.
// The destination defaults to the file's name in the working
// directory.
func (a *App) Dl(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: dl <name> [path]")
	}

	f, err := a.fileArg(args[0])
	if err != nil {
		return err
	}
	if f.URL == "" {
		return fmt.Errorf("no download URL for %s, run ls to refresh", f.Name)
	}

	dest := f.Name
	if len(args) == 2 {
		dest = args[1]
		if info, err := os.Stat(dest); err == nil && info.IsDir() {
			dest = filepath.Join(dest, f.Name)
		}
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	n, err := netx.DownloadFromSignedURL(ctx, f.URL, out)
	if err != nil {
		os.Remove(dest)
		return err
	}

	printlnFn(fmt.Sprintf("downloaded %s (%d bytes) to %s", f.Name, n, dest))
	return nil
}
