// Package connectors discovers data files on disk for batch commands.
package connectors

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileMeta describes one discovered file.
type FileMeta struct {
	Path     string
	Size     int64
	Modified time.Time
}

// DiscoveryOptions filters discovered files.
type DiscoveryOptions struct {
	Recursive bool
	MinSize   int64
	MaxSize   int64
}

// DiscoverFiles walks root and returns files with the given extension that
// pass the filters, plus their count. An empty result is not an error; the
// caller decides whether that matters.
func DiscoverFiles(root string, ext string, options DiscoveryOptions) ([]FileMeta, int, error) {
	if root == "" {
		return nil, 0, fmt.Errorf("root directory cannot be empty")
	}
	stat, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, 0, fmt.Errorf("directory does not exist: %s", root)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("stat %s: %w", root, err)
	}
	if !stat.IsDir() {
		return nil, 0, fmt.Errorf("path is not a directory: %s", root)
	}

	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return nil, 0, fmt.Errorf("file extension cannot be empty")
	}

	var files []FileMeta
	walkFunc := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if d.IsDir() {
			if path != root && !options.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.EqualFold(filepath.Ext(path), "."+ext) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("error getting file info for %s: %w", path, err)
		}
		if options.MinSize > 0 && info.Size() < options.MinSize {
			return nil
		}
		if options.MaxSize > 0 && info.Size() > options.MaxSize {
			return nil
		}

		files = append(files, FileMeta{
			Path:     path,
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
		return nil
	}

	if err := filepath.WalkDir(root, walkFunc); err != nil {
		return nil, 0, fmt.Errorf("directory walk error: %w", err)
	}

	return files, len(files), nil
}
