// Package filesystem provides the types.FS implementations used by anek,
// all backed by afero: the OS filesystem for normal runs and in-memory
// filesystems for tests.
package filesystem
