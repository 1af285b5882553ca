// Package cli implements the interactive bucketdrive shell: a small
// REPL that navigates the bucket like a directory tree and drives
// uploads, deletes and tag edits through a drive session.
package cli
