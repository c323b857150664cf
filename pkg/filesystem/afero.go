package filesystem

import (
	"io/fs"

	"github.com/spf13/afero"

	"github.com/arthur-debert/anek/pkg/types"
)

// aferoFS implements types.FS using afero
type aferoFS struct {
	fs afero.Fs
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs}
}

// NewOS returns the OS filesystem
func NewOS() types.FS {
	return NewAferoFS(afero.NewOsFs())
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() types.FS {
	return NewAferoFS(afero.NewMemMapFs())
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) Mkdir(path string, perm fs.FileMode) error {
	return a.fs.Mkdir(path, perm)
}

func (a *aferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	return a.fs.Rename(oldpath, newpath)
}

// ReadDir returns the entries of a directory sorted by name
func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	dirEntries := make([]fs.DirEntry, len(entries))
	for i, entry := range entries {
		dirEntries[i] = fs.FileInfoToDirEntry(entry)
	}
	return dirEntries, nil
}
