// Package variable implements the variable command: scanning inputs and
// commands for variables without a variable file, describing variables
// and updating input files from key=value lines.
package variable

import (
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/anek/pkg/commands/internal"
	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/lines"
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/arthur-debert/anek/pkg/paths"
	"github.com/arthur-debert/anek/pkg/template"
	"github.com/arthur-debert/anek/pkg/types"
	"github.com/arthur-debert/anek/pkg/variables"
)

// VariableOptions defines the options for the Variable command.
type VariableOptions struct {
	Project *paths.Project
	// ScanInputs collects the keys defined in input files
	ScanInputs bool
	// ScanCommands collects the variables referenced by command files
	ScanCommands bool
	// Add creates an empty variable file for every new scanned variable
	Add bool
	// List describes every variable by its first line
	List bool
	// Details describes every variable with its whole file
	Details bool
	// Info describes one variable with its whole file
	Info string
	// Update is a file, or a file template with {1}, {2}.. placeholders,
	// updated from the key=value lines of Stdin
	Update   string
	Stdin    io.Reader
	OnChange func(variables.Change)
	// OnWaiting is called before reading Stdin
	OnWaiting func()
}

// Variable runs the requested variable operations in order: scan, list
// or info, then update.
func Variable(opts VariableOptions) (*types.VariableResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Variable").Bool("scanInputs", opts.ScanInputs).Bool("scanCommands", opts.ScanCommands).Msg("Executing command")

	if opts.Add && !opts.ScanInputs && !opts.ScanCommands {
		return nil, errors.New(errors.ErrInvalidInput, "--add requires --scan-inputs or --scan-commands")
	}
	if (opts.List || opts.Details) && opts.Info != "" {
		return nil, errors.New(errors.ErrInvalidInput, "only one of --list, --details and --info can be used")
	}

	result := &types.VariableResult{New: []string{}, Added: []string{}, Infos: []types.VariableInfo{}}
	if err := scan(opts, result); err != nil {
		return nil, err
	}

	switch {
	case opts.List || opts.Details:
		infos, err := Describe(opts.Project, opts.Details)
		if err != nil {
			return nil, err
		}
		result.Infos = infos
	case opts.Info != "":
		info, err := Info(opts.Project, opts.Info)
		if err != nil {
			return nil, err
		}
		result.Infos = []types.VariableInfo{info}
	}

	if opts.Update != "" {
		if err := update(opts); err != nil {
			return nil, err
		}
	}

	log.Info().Str("command", "Variable").Int("new", len(result.New)).Int("added", len(result.Added)).Msg("Command finished")
	return result, nil
}

func scan(opts VariableOptions, result *types.VariableResult) error {
	found := map[string]bool{}
	if opts.ScanInputs {
		if err := scanInputs(opts.Project, found); err != nil {
			return err
		}
	}
	if opts.ScanCommands {
		if err := scanCommands(opts.Project, found); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(found))
	for n := range found {
		names = append(names, n)
	}
	sort.Strings(names)

	fs := opts.Project.FS()
	for _, name := range names {
		path := opts.Project.File(types.Variables, name)
		info, err := fs.Stat(path)
		if err == nil {
			if !info.Mode().IsRegular() {
				return errors.Newf(errors.ErrFileAccess, "%s is not a file", path).WithDetail("path", path)
			}
			continue
		}
		result.New = append(result.New, name)
		if opts.Add {
			if err := fs.WriteFile(path, nil, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileCreate, "cannot create %s", path).WithDetail("path", path)
			}
			result.Added = append(result.Added, path)
		}
	}
	return nil
}

func categoryFiles(p *paths.Project, c types.Category) ([]string, error) {
	dir := p.Directory(c)
	if _, err := p.FS().Stat(dir); err != nil {
		return nil, nil
	}
	return lines.ListRecursive(p.FS(), dir)
}

func scanInputs(p *paths.Project, found map[string]bool) error {
	files, err := categoryFiles(p, types.Inputs)
	if err != nil {
		return err
	}
	for _, f := range files {
		read, err := lines.Read(p.FS(), f)
		if err != nil {
			return err
		}
		keys, err := variables.Keys(read)
		if err != nil {
			return err
		}
		for _, k := range keys {
			found[k] = true
		}
	}
	return nil
}

func scanCommands(p *paths.Project, found map[string]bool) error {
	files, err := categoryFiles(p, types.Commands)
	if err != nil {
		return err
	}
	for _, f := range files {
		t, err := internal.ReadTemplate(p.FS(), f)
		if err != nil {
			return err
		}
		for _, v := range t.Variables() {
			found[v] = true
		}
	}
	return nil
}

// Describe returns the description of every variable file
func Describe(p *paths.Project, details bool) ([]types.VariableInfo, error) {
	dir := p.Directory(types.Variables)
	if _, err := p.FS().Stat(dir); err != nil {
		return []types.VariableInfo{}, nil
	}
	files, err := lines.ListFilesSorted(p.FS(), dir)
	if err != nil {
		return nil, err
	}

	infos := []types.VariableInfo{}
	for _, f := range files {
		if info, err := p.FS().Stat(f); err != nil || !info.Mode().IsRegular() {
			continue
		}
		vi, err := describe(p.FS(), filepath.Base(f), f, details)
		if err != nil {
			return nil, err
		}
		infos = append(infos, vi)
	}
	return infos, nil
}

// Info returns the full description of one variable
func Info(p *paths.Project, name string) (types.VariableInfo, error) {
	path := p.File(types.Variables, name)
	if info, err := p.FS().Stat(path); err != nil || !info.Mode().IsRegular() {
		return types.VariableInfo{}, p.Missing(types.Variables, name)
	}
	return describe(p.FS(), name, path, true)
}

func describe(fs types.FS, name, path string, details bool) (types.VariableInfo, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return types.VariableInfo{}, errors.Wrapf(err, errors.ErrFileAccess, "couldn't open %s", path).
			WithDetail("path", path)
	}

	text := strings.TrimRight(string(data), "\n")
	vi := types.VariableInfo{Name: name}
	if text == "" {
		return vi, nil
	}
	all := strings.Split(text, "\n")
	vi.Summary = all[0]
	if details {
		vi.Details = all[1:]
	}
	return vi, nil
}

func update(opts VariableOptions) error {
	fileTemplate, err := template.Parse(opts.Update)
	if err != nil {
		return err
	}
	if opts.Stdin == nil {
		return errors.New(errors.ErrInvalidInput, "no input to read updates from")
	}
	if opts.OnWaiting != nil {
		opts.OnWaiting()
	}
	return variables.UpdateFromStream(opts.Project.FS(), fileTemplate, opts.Stdin, opts.OnChange)
}
