// Package keys maps between (folder path, file name) pairs and object
// store keys. Object stores have a flat key space; a folder is nothing
// more than a shared key prefix ending in "/". All functions are pure.
package keys

import (
	"strings"

	"github.com/dmitrijs2005/bucketdrive/internal/common"
)

// Delimiter separates path segments inside an object key.
const Delimiter = "/"

// reserved characters are not allowed in a leaf segment. "/" is the
// delimiter itself; the rest conflict with the store's key grammar.
const reserved = `#$[]*/`

// ValidateName reports whether name is usable as a leaf segment.
// Empty names and names containing reserved characters are rejected.
func ValidateName(name string) error {
	if name == "" || strings.ContainsAny(name, reserved) {
		return common.ErrInvalidName
	}
	return nil
}

// KeyFor builds the object key for a file stored under folderPath.
// folderPath is either "" (the root) or a prefix with a trailing "/".
func KeyFor(folderPath, fileName string) (string, error) {
	if err := ValidateName(fileName); err != nil {
		return "", err
	}
	return folderPath + fileName, nil
}

// ChildPrefix appends a folder segment to parentPrefix, producing the
// prefix that scopes everything nested under the child folder.
func ChildPrefix(parentPrefix, name string) string {
	return parentPrefix + name + Delimiter
}

// LeafName returns the last path segment of key. A trailing delimiter
// (folder prefix form) is stripped first, so LeafName("a/b/") == "b".
func LeafName(key string) string {
	key = strings.TrimSuffix(key, Delimiter)
	if i := strings.LastIndex(key, Delimiter); i >= 0 {
		return key[i+1:]
	}
	return key
}

// ParentPrefix returns the prefix of the folder containing key,
// or "" when the key sits at the bucket root.
func ParentPrefix(key string) string {
	key = strings.TrimSuffix(key, Delimiter)
	if i := strings.LastIndex(key, Delimiter); i >= 0 {
		return key[:i+1]
	}
	return ""
}
