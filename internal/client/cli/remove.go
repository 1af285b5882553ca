package cli

import (
	"context"
	"fmt"
)

// Rm deletes a single file from the current folder.
func (a *App) Rm(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rm <name>")
	}
	f, ok := a.session.FileByName(args[0])
	if !ok {
		return fmt.Errorf("no such file: %s", args[0])
	}
	if err := a.session.RemoveFile(ctx, f.FullPath); err != nil {
		return err
	}
	printlnFn("removed", f.Name)
	return nil
}
