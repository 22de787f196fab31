package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Supported video file extensions (lowercase, with leading dot).
var videoExtensions = map[string]bool{
	".ts":   true,
	".3gp":  true,
	".ogg":  true,
	".avi":  true,
	".flv":  true,
	".m4v":  true,
	".mkv":  true,
	".mov":  true,
	".mp4":  true,
	".wmv":  true,
	".rmvb": true,
	".webm": true,
}

// ErrRootPath is returned for an input that names the filesystem root.
var ErrRootPath = errors.New("refusing to scan the filesystem root")

// IsVideoPath reports whether path has a supported video extension.
func IsVideoPath(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// Discover expands inputs into a sorted, de-duplicated list of video files.
// A file input is kept when its extension is supported. A directory input
// is walked down to depth levels (1 = direct children). Symlinks are not
// followed. Inputs or entries that cannot be read are returned as errors
// alongside whatever was found.
func Discover(inputs []string, depth int) ([]string, []error) {
	seen := make(map[string]bool)
	var files []string
	var errs []error
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, input := range inputs {
		clean := filepath.Clean(input)
		if isRootPath(clean) {
			errs = append(errs, fmt.Errorf("%s: %w", input, ErrRootPath))
			continue
		}
		fi, err := os.Lstat(clean)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		switch {
		case fi.Mode().IsRegular():
			if IsVideoPath(clean) {
				add(clean)
			}
		case fi.IsDir():
			found, walkErrs := walkVideos(clean, depth)
			for _, p := range found {
				add(p)
			}
			errs = append(errs, walkErrs...)
		}
	}

	sort.Strings(files)
	return files, errs
}

// walkVideos collects regular video files under root no deeper than depth.
func walkVideos(root string, depth int) ([]string, []error) {
	var files []string
	var errs []error
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, err)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && levels(root, path) >= depth {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && IsVideoPath(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, errs
}

// levels returns how many path elements path lies below root.
func levels(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

func isRootPath(clean string) bool {
	return filepath.Dir(clean) == clean && filepath.IsAbs(clean)
}
