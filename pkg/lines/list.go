package lines

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/types"
)

// ListFilesSorted returns the full paths of the direct entries of dir,
// files and directories alike, sorted lexicographically.
func ListFilesSorted(fs types.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "couldn't list directory %s", dir).
			WithDetail("path", dir)
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ListRecursive returns every file under dir breadth first: the sorted
// entries of a directory are visited before the contents of its
// subdirectories. A path that is a file is returned as is.
func ListRecursive(fs types.FS, dir string) ([]string, error) {
	var files []string
	queue := []string{dir}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		info, err := fs.Stat(current)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "couldn't read %s", current).
				WithDetail("path", current)
		}
		if info.Mode().IsRegular() {
			files = append(files, current)
			continue
		}
		if !info.IsDir() {
			continue
		}
		children, err := ListFilesSorted(fs, current)
		if err != nil {
			return nil, err
		}
		queue = append(queue, children...)
	}
	return files, nil
}

// ListFilenames returns the files under dir relative to it, using '/' as
// separator, in breadth first order.
func ListFilenames(fs types.FS, dir string) ([]string, error) {
	files, err := ListRecursive(fs, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, relative(dir, f))
	}
	return names, nil
}

// ListProjectFilenames lists the logical files of a category directory.
// A directory named "<name>.d" counts as the single file "<name>", so a
// file and its drop-in directory are reported once. Sorted.
func ListProjectFilenames(fs types.FS, dir string) ([]string, error) {
	seen := map[string]bool{}
	queue := []string{dir}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		info, err := fs.Stat(current)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "couldn't read %s", current).
				WithDetail("path", current)
		}
		switch {
		case info.Mode().IsRegular():
			seen[relative(dir, current)] = true
		case info.IsDir() && current != dir && strings.HasSuffix(info.Name(), DropInSuffix):
			seen[strings.TrimSuffix(relative(dir, current), DropInSuffix)] = true
		case info.IsDir():
			children, err := ListFilesSorted(fs, current)
			if err != nil {
				return nil, err
			}
			queue = append(queue, children...)
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func relative(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = strings.TrimPrefix(path, dir)
	}
	return strings.TrimPrefix(filepath.ToSlash(rel), "/")
}
