package upload

// Part sizing limits. Parts below MinPartSize are rejected by
// S3-compatible stores (except the final part); MaxParts caps the part
// count per upload, so larger files get proportionally larger parts.
const (
	MinPartSize = int64(5 << 20)
	MaxParts    = int64(1000)
)

// PartSize picks the part size for a file of the given total size:
// the smallest size that keeps the upload under MaxParts parts while
// never going below MinPartSize.
func PartSize(total int64) int64 {
	size := (total + MaxParts - 1) / MaxParts
	if size < MinPartSize {
		return MinPartSize
	}
	return size
}

// partCount returns how many parts a file of the given size splits
// into. Empty files still take a single (empty) part.
func partCount(total, partSize int64) int64 {
	n := (total + partSize - 1) / partSize
	if n == 0 {
		n = 1
	}
	return n
}
