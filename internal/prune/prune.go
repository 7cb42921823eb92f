// Package prune deletes generated files that have outlived their retention.
package prune

import (
	"os"
	"time"

	"github.com/mediactl/mediactl/filesystem"
	"github.com/spf13/afero"
)

// Older removes every regular file under dir last modified more than ttl ago and returns how
// many were removed. A non-positive ttl keeps everything.
func Older(dir string, ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, nil
	}

	var removed int
	cutoff := time.Now().Add(-ttl)
	fs := filesystem.API()
	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || info.ModTime().After(cutoff) {
			return nil
		}
		if fs.Remove(path) == nil {
			removed++
		}
		return nil
	})
	return removed, err
}
