package models

import "time"

// File is a stored object presented as a drive file. FullPath is the
// object key. URL is a time-limited signed access URL: a derived,
// expiring capability, not part of the file's identity. Consumers must
// not cache it beyond its validity window.
type File struct {
	FullPath    string
	Name        string
	Parent      string
	Size        int64
	ContentType string
	CreatedAt   time.Time
	BucketName  string
	BucketURL   string
	URL         string
}
