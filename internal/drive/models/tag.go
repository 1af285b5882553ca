package models

// Tag is a single key/value pair attached to a file. Tags form a set
// keyed by Key; on the store side the last write wins.
type Tag struct {
	Key   string
	Value string
}
