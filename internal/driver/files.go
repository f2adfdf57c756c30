package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude matches diagram files when a directory is given.
var DefaultInclude = []string{"**/*.mmd", "**/*.mermaid"}

// Collect expands command line arguments into a sorted, duplicate-free
// list of files. Directories are walked and filtered by include; glob
// patterns are expanded; plain paths are taken as is. Paths matching any
// exclude pattern are dropped in every case.
func Collect(args, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	for _, p := range append(slices.Clone(include), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if seen[path] || excluded(path, exclude) {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, arg := range args {
		info, statErr := os.Stat(arg)
		switch {
		case statErr == nil && info.IsDir():
			found, err := walkDir(arg, include)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				add(f)
			}
		case statErr != nil && hasMeta(arg):
			matches, err := doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("failed to expand %q: %w", arg, err)
			}
			n := 0
			for _, m := range matches {
				if fi, err := os.Stat(m); err == nil && !fi.IsDir() {
					add(m)
					n++
				}
			}
			if n == 0 {
				return nil, fmt.Errorf("no files match %q", arg)
			}
		default:
			// несуществующий файл попадёт в результат как ошибка чтения
			add(arg)
		}
	}
	slices.Sort(files)
	return files, nil
}

func walkDir(dir string, include []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range include {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", dir, err)
	}
	return files, nil
}

func excluded(path string, exclude []string) bool {
	slashed := strings.TrimPrefix(filepath.ToSlash(path[len(filepath.VolumeName(path)):]), "/")
	for _, pattern := range exclude {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}

func hasMeta(path string) bool {
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
