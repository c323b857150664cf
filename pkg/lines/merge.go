package lines

import (
	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/arthur-debert/anek/pkg/types"
)

// Sources expands paths into the ordered list of files to read.
//
// A directory contributes every file below it. A plain file, or a path
// that does not exist, contributes its "<path>.d" drop-in first (all files
// of the directory, or the file itself) followed by the plain file when it
// exists. Later files override earlier ones when parsed as key=value, so
// the plain file wins over its drop-ins.
func Sources(fs types.FS, paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := fs.Stat(path)
		exists := err == nil

		if exists && info.IsDir() {
			listed, err := ListRecursive(fs, path)
			if err != nil {
				return nil, err
			}
			files = append(files, listed...)
			continue
		}
		if exists && !info.Mode().IsRegular() {
			return nil, errors.Newf(errors.ErrFileAccess, "path %s is neither a directory nor a file", path).
				WithDetail("path", path)
		}

		dropIn := path + DropInSuffix
		if dinfo, err := fs.Stat(dropIn); err == nil {
			if dinfo.IsDir() {
				listed, err := ListRecursive(fs, dropIn)
				if err != nil {
					return nil, err
				}
				files = append(files, listed...)
			} else if dinfo.Mode().IsRegular() {
				files = append(files, dropIn)
			}
		}
		if exists {
			files = append(files, path)
		}
	}
	return files, nil
}

// Merge reads every source of paths in order and concatenates their
// lines. Each line keeps the numbering of its own file and its source.
func Merge(fs types.FS, paths []string) ([]types.Line, error) {
	log := logging.GetLogger("core.lines")

	files, err := Sources(fs, paths)
	if err != nil {
		return nil, err
	}
	log.Trace().Strs("paths", paths).Strs("files", files).Msg("Merging sources")

	var out []types.Line
	for _, file := range files {
		read, err := Read(fs, file)
		if err != nil {
			return nil, err
		}
		out = append(out, read...)
	}
	return out, nil
}
