// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate test projects on memory or real filesystems

package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/anek/pkg/filesystem"
	"github.com/arthur-debert/anek/pkg/paths"
	"github.com/arthur-debert/anek/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is a freshly created project
type TestEnvironment struct {
	Root    string
	FS      types.FS
	Project *paths.Project
	Type    EnvType

	t *testing.T
}

// NewTestEnvironment creates a project with every category directory
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvMemoryOnly:
		env.Root = "/virtual/project"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		env.Root = filepath.Join(t.TempDir(), "project")
		env.FS = filesystem.NewOS()
	}

	if err := env.FS.MkdirAll(env.Root, 0755); err != nil {
		t.Fatalf("Failed to create project root: %v", err)
	}
	project, err := paths.Create(env.FS, env.Root)
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	env.Project = project
	return env
}

// WriteFile writes a file relative to the .anek directory, creating
// parent directories.
func (env *TestEnvironment) WriteFile(rel, content string) string {
	env.t.Helper()
	path := env.Project.GlobalFile(rel)
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", rel, err)
	}
	return path
}

// ReadFile reads a file relative to the .anek directory
func (env *TestEnvironment) ReadFile(rel string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(env.Project.GlobalFile(rel))
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", rel, err)
	}
	return string(data)
}

// Input writes inputs/<name> from key=value pairs given in order
func (env *TestEnvironment) Input(name string, kv ...string) string {
	return env.WriteFile("inputs/"+name, strings.Join(kv, "\n")+"\n")
}

// Command writes commands/<name>
func (env *TestEnvironment) Command(name, template string) string {
	return env.WriteFile("commands/"+name, template+"\n")
}

// Pipeline writes pipelines/<name> with one command per line
func (env *TestEnvironment) Pipeline(name string, commands ...string) string {
	return env.WriteFile("pipelines/"+name, strings.Join(commands, "\n")+"\n")
}

// Batch writes batch/<name> with one entry per line
func (env *TestEnvironment) Batch(name string, entries ...string) string {
	return env.WriteFile("batch/"+name, strings.Join(entries, "\n")+"\n")
}

// Loop writes one axis file per variable into loops/<name>.d
func (env *TestEnvironment) Loop(name string, axes map[string][]string) string {
	for variable, values := range axes {
		env.WriteFile("loops/"+name+".d/"+variable, strings.Join(values, "\n")+"\n")
	}
	return env.Project.File(types.Loops, name+".d")
}

// Template writes templates/<name>
func (env *TestEnvironment) Template(name, content string) string {
	return env.WriteFile("templates/"+name, content)
}

// Variable writes variables/<name> with a description
func (env *TestEnvironment) Variable(name, description string) string {
	return env.WriteFile("variables/"+name, description)
}
