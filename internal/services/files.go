package services

import (
	"path/filepath"
	"strings"

	"cropgenesis/pkg/utils"
)

// removeUploads deletes the files behind the given /uploads URLs. Deletion
// happens after the DB row is gone, so a failure here only leaks disk space.
func removeUploads(store utils.FileStoreInterface, uploadDir string, urls ...string) {
	for _, url := range urls {
		name := strings.TrimPrefix(url, "/uploads/")
		if name == "" || name == url {
			continue
		}
		store.Remove(filepath.Join(uploadDir, name))
	}
}
