// Package types defines the core types shared by the anek packages:
// the closed set of configuration categories, input lines with their
// source, variable maps, jobs and the filesystem interface.
package types
