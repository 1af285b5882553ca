// Package models holds the data types shared by the drive components:
// files, folders, in-flight uploads and object tags.
package models

import "time"

// Folder is one node of the virtual hierarchy. Identity is FullPath
// within a bucket; FullPath always carries a trailing "/".
//
// A Folder comes from one of two sources: derived from a remote
// delimiter listing (a view, never separately created or destroyed)
// or created explicitly by the user and persisted in the local folder
// index. The two are merged at read time; a remote prefix suppresses
// the index entry with the same FullPath.
type Folder struct {
	FullPath   string
	Name       string
	Parent     string
	BucketName string
	BucketURL  string
	CreatedAt  time.Time
}
