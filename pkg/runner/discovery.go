package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Discover finds the Markdown sources under opts.SourceRoot. It returns a
// deterministically sorted list of paths rooted at SourceRoot.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	root := filepath.Clean(opts.SourceRoot)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat content root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root %s is not a directory", root)
	}

	filter := opts.Filter()
	filter.Root = root

	var files []string
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if filter.SkipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type().IsRegular() && filter.Accepts(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk content root %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
