package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bucketdrive/internal/drive/models"
)

func (a *App) fileArg(name string) (*models.File, error) {
	f, ok := a.session.FileByName(name)
	if !ok {
		return nil, fmt.Errorf("no such file: %s", name)
	}
	return f, nil
}

func (a *App) Tags(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tags <file>")
	}
	f, err := a.fileArg(args[0])
	if err != nil {
		return err
	}
	tags, err := a.session.ListTags(ctx, f)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		printlnFn("no tags")
		return nil
	}
	for _, t := range tags {
		printlnFn(fmt.Sprintf("  %s=%s", t.Key, t.Value))
	}
	return nil
}

func (a *App) TagAdd(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: tagadd <file> <key> <value>")
	}
	f, err := a.fileArg(args[0])
	if err != nil {
		return err
	}
	return a.session.AddTag(ctx, f, args[1], args[2])
}

func (a *App) TagRm(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: tagrm <file> <key>")
	}
	f, err := a.fileArg(args[0])
	if err != nil {
		return err
	}
	return a.session.RemoveTag(ctx, f, args[1])
}

// TagEdit replaces the value stored under a key. The previous value is
// looked up first so the swap can be expressed as remove-then-add.
func (a *App) TagEdit(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: tagedit <file> <key> <value>")
	}
	f, err := a.fileArg(args[0])
	if err != nil {
		return err
	}

	tags, err := a.session.ListTags(ctx, f)
	if err != nil {
		return err
	}
	var prev *models.Tag
	for i := range tags {
		if tags[i].Key == args[1] {
			prev = &tags[i]
			break
		}
	}
	if prev == nil {
		return fmt.Errorf("no tag %q on %s", args[1], f.Name)
	}

	return a.session.EditTag(ctx, f, *prev, models.Tag{Key: args[1], Value: args[2]})
}
