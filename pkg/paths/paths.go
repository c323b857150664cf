package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/lines"
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/arthur-debert/anek/pkg/types"
)

// MarkerDir is the directory that marks a project root.
// IMPORTANT: this is part of the on-disk layout and is not configurable.
const MarkerDir = ".anek"

// Project is a located anek project
type Project struct {
	fs        types.FS
	root      string
	configDir string
}

// Find walks from start up to the filesystem root looking for a directory
// containing the marker directory.
func Find(fs types.FS, start string) (*Project, error) {
	log := logging.GetLogger("core.paths")

	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", start)
	}

	visited := map[string]bool{}
	for !visited[dir] {
		visited[dir] = true

		marker := filepath.Join(dir, MarkerDir)
		info, err := fs.Stat(marker)
		if err == nil {
			if !info.IsDir() {
				return nil, errors.Newf(errors.ErrNotADirectory, "%s is not a directory", marker).
					WithDetail("path", marker)
			}
			log.Debug().Str("root", dir).Msg("Found project")
			return &Project{fs: fs, root: dir, configDir: marker}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil, errors.New(errors.ErrConfigNotFound, "No .anek configuration in the current path").
		WithDetail("start", start)
}

// Create makes a new project at dir: the marker directory and every
// category directory. Directories created before a failure are left in
// place.
func Create(fs types.FS, dir string) (*Project, error) {
	log := logging.GetLogger("core.paths")

	marker := filepath.Join(dir, MarkerDir)
	if info, err := fs.Stat(marker); err == nil {
		if info.IsDir() {
			return nil, errors.Newf(errors.ErrAlreadyExists, "%s already has anek configuration", marker).
				WithDetail("path", marker)
		}
		return nil, errors.Newf(errors.ErrAlreadyExists, "%s file exists, that is not anek configuration", marker).
			WithDetail("path", marker)
	}

	if err := fs.Mkdir(marker, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", marker).
			WithDetail("path", marker)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		root = dir
	}
	p := &Project{fs: fs, root: root, configDir: filepath.Join(root, MarkerDir)}

	for _, c := range types.AllCategories() {
		path := p.Directory(c)
		if err := fs.Mkdir(path, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", path).
				WithDetail("path", path)
		}
	}

	log.Info().Str("root", root).Msg("Created project")
	return p, nil
}

// Open returns the project rooted at root without searching
func Open(fs types.FS, root string) *Project {
	return &Project{fs: fs, root: root, configDir: filepath.Join(root, MarkerDir)}
}

// FS returns the filesystem the project lives on
func (p *Project) FS() types.FS { return p.fs }

// Root is the project root, the directory containing the marker
func (p *Project) Root() string { return p.root }

// ConfigDir is the marker directory
func (p *Project) ConfigDir() string { return p.configDir }

// Directory returns the directory of a category
func (p *Project) Directory(c types.Category) string {
	return filepath.Join(p.configDir, c.DirName())
}

// GlobalFile resolves a '/' separated path relative to the marker directory
func (p *Project) GlobalFile(rel string) string {
	return filepath.Join(p.configDir, filepath.FromSlash(rel))
}

// File resolves a name inside a category. The file may not exist.
func (p *Project) File(c types.Category, name string) string {
	return p.GlobalFile(c.DirName() + "/" + name)
}

// Files resolves several names inside a category
func (p *Project) Files(c types.Category, names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = p.File(c, n)
	}
	return out
}

// ResolveExisting returns the plain file when it exists, else its drop-in
// directory when that exists, else the plain path.
func (p *Project) ResolveExisting(c types.Category, name string) string {
	plain := p.File(c, name)
	if _, err := p.fs.Stat(plain); err == nil {
		return plain
	}
	dropIn := plain + lines.DropInSuffix
	if _, err := p.fs.Stat(dropIn); err == nil {
		return dropIn
	}
	return plain
}

// Exists reports whether name, or its drop-in, exists in the category
func (p *Project) Exists(c types.Category, name string) bool {
	plain := p.File(c, name)
	if _, err := p.fs.Stat(plain); err == nil {
		return true
	}
	_, err := p.fs.Stat(plain + lines.DropInSuffix)
	return err == nil
}

// List returns the logical file names of a category
func (p *Project) List(c types.Category) ([]string, error) {
	dir := p.Directory(c)
	if _, err := p.fs.Stat(dir); err != nil {
		return nil, nil
	}
	return lines.ListProjectFilenames(p.fs, dir)
}

// ListAll returns every file below the marker directory, relative to it
func (p *Project) ListAll() ([]string, error) {
	return lines.ListFilenames(p.fs, p.configDir)
}

// Missing builds the error for a name that does not exist in a category,
// suggesting close matches.
func (p *Project) Missing(c types.Category, name string) error {
	err := errors.Newf(errors.ErrNotFound, "%s %q not found in %s", strings.TrimSuffix(c.DirName(), "s"), name, p.Directory(c)).
		WithDetail("category", c.DirName()).
		WithDetail("name", name)
	if suggestions := p.Suggest(c, name); len(suggestions) > 0 {
		err.Message += ", did you mean: " + strings.Join(suggestions, ", ")
		err.WithDetail("suggestions", suggestions)
	}
	return err
}
