package types

import "io/fs"

// FS is the filesystem surface used by anek. Production code uses the OS
// filesystem, tests use an in-memory one.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	Mkdir(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error
}
