package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeExec) Ls(ctx context.Context) error  { return f.record("ls", nil) }
func (f *fakeExec) Pwd(ctx context.Context) error { return f.record("pwd", nil) }
func (f *fakeExec) Cd(ctx context.Context, args []string) error {
	return f.record("cd", args)
}
func (f *fakeExec) Mkdir(ctx context.Context, args []string) error {
	return f.record("mkdir", args)
}
func (f *fakeExec) Rmdir(ctx context.Context, args []string) error {
	return f.record("rmdir", args)
}
func (f *fakeExec) Up(ctx context.Context, args []string) error {
	return f.record("up", args)
}
func (f *fakeExec) Dl(ctx context.Context, args []string) error {
	return f.record("dl", args)
}
func (f *fakeExec) Uploads(ctx context.Context) error { return f.record("uploads", nil) }
func (f *fakeExec) Pause(ctx context.Context, args []string) error {
	return f.record("pause", args)
}
func (f *fakeExec) Resume(ctx context.Context, args []string) error {
	return f.record("resume", args)
}
func (f *fakeExec) Dismiss(ctx context.Context, args []string) error {
	return f.record("dismiss", args)
}
func (f *fakeExec) Rm(ctx context.Context, args []string) error {
	return f.record("rm", args)
}
func (f *fakeExec) Tags(ctx context.Context, args []string) error {
	return f.record("tags", args)
}
func (f *fakeExec) TagAdd(ctx context.Context, args []string) error {
	return f.record("tagadd", args)
}
func (f *fakeExec) TagRm(ctx context.Context, args []string) error {
	return f.record("tagrm", args)
}
func (f *fakeExec) TagEdit(ctx context.Context, args []string) error {
	return f.record("tagedit", args)
}

func TestRunREPL_CommandsAndArgs(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"ls",
		"cd docs",
		"mkdir photos",
		"up ./cat.jpg",
		"uploads",
		"pause 42",
		"tags cat.jpg",
		"foobar",
		"",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "drive:/" }, sc)

	wantOrder := []string{"ls", "cd", "mkdir", "up", "uploads", "pause", "tags"}
	if len(exec.calls) != len(wantOrder) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, wantOrder)
	}
	for i, c := range exec.calls {
		if c != wantOrder[i] {
			t.Fatalf("commands order mismatch: got %v, want %v", exec.calls, wantOrder)
		}
	}

	if got := exec.args[1]; len(got) != 1 || got[0] != "docs" {
		t.Fatalf("cd args: %v", got)
	}
	if got := exec.args[3]; len(got) != 1 || got[0] != "./cat.jpg" {
		t.Fatalf("up args: %v", got)
	}
}

func TestRunREPL_QuitAndEOF(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" },
		bufio.NewScanner(strings.NewReader("quit\nls\n")))
	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls after quit: %v", exec.calls)
	}

	exec = &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" },
		bufio.NewScanner(strings.NewReader("")))
	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls on EOF: %v", exec.calls)
	}
}
