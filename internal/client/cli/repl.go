package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// printlnFn and outputW are test seams for user-facing output.
// In tests, replace them with stubs.
var (
	printlnFn           = fmt.Println
	outputW   io.Writer = os.Stdout
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Ls(ctx context.Context) error
	Pwd(ctx context.Context) error
	Cd(ctx context.Context, args []string) error
	Mkdir(ctx context.Context, args []string) error
	Rmdir(ctx context.Context, args []string) error
	Up(ctx context.Context, args []string) error
	Dl(ctx context.Context, args []string) error
	Uploads(ctx context.Context) error
	Pause(ctx context.Context, args []string) error
	Resume(ctx context.Context, args []string) error
	Dismiss(ctx context.Context, args []string) error
	Rm(ctx context.Context, args []string) error
	Tags(ctx context.Context, args []string) error
	TagAdd(ctx context.Context, args []string) error
	TagRm(ctx context.Context, args []string) error
	TagEdit(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  ls                          list the current folder
  cd <name> | cd .. | cd /    change folder
  pwd                         print the current path
  mkdir <name>                create a folder
  rmdir <name>                delete a folder and everything in it
  up <path> [name]            upload a local file
  dl <name> [path]            download a file
  uploads                     show active uploads
  pause <id>                  pause an upload
  resume <id>                 resume a paused upload
  dismiss <id>                drop a failed upload
  rm <name>                   delete a file
  tags <file>                 list a file's tags
  tagadd <file> <key> <val>   add a tag
  tagrm <file> <key>          remove a tag
  tagedit <file> <key> <val>  replace a tag's value
  exit | quit                 leave the program`

// runREPL starts a read-eval-print loop over the drive session.
//
// It reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
// Command handlers return errors for bad arguments and failed
// operations; the loop prints them and keeps going, so a failed
// delete or upload never kills the shell.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("%s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "ls", "l":
			err = a.Ls(ctx)

		case "cd":
			err = a.Cd(ctx, args)

		case "pwd":
			err = a.Pwd(ctx)

		case "mkdir":
			err = a.Mkdir(ctx, args)

		case "rmdir":
			err = a.Rmdir(ctx, args)

		case "up":
			err = a.Up(ctx, args)

		case "dl":
			err = a.Dl(ctx, args)

		case "uploads":
			err = a.Uploads(ctx)

		case "pause":
			err = a.Pause(ctx, args)

		case "resume":
			err = a.Resume(ctx, args)

		case "dismiss":
			err = a.Dismiss(ctx, args)

		case "rm":
			err = a.Rm(ctx, args)

		case "tags":
			err = a.Tags(ctx, args)

		case "tagadd":
			err = a.TagAdd(ctx, args)

		case "tagrm":
			err = a.TagRm(ctx, args)

		case "tagedit":
			err = a.TagEdit(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
