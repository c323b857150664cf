package variables

import (
	"bufio"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/lines"
	"github.com/arthur-debert/anek/pkg/template"
	"github.com/arthur-debert/anek/pkg/types"
)

// FileSeparator splits file template arguments from the key=value pair in
// update lines: "a::b::key=value" renders the file template with {1}=a
// and {2}=b.
const FileSeparator = "::"

// Change describes one variable update
type Change struct {
	File     string
	Variable string
	Old      string
	New      string
	// Existed is false when the variable is new to the file
	Existed bool
}

// Changed reports whether the update modified the value
func (c Change) Changed() bool {
	return !c.Existed || c.Old != c.New
}

// Update sets the variable of a key=value line in file and rewrites the
// file sorted by variable name. Comments in the file are not kept. Lines
// without '=' are ignored and report ok=false.
func Update(fs types.FS, file, line string) (change Change, ok bool, err error) {
	key, value, found := strings.Cut(line, Separator)
	if !found {
		return Change{}, false, nil
	}
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if key == "" {
		return Change{}, false, nil
	}

	vars := types.VariableMap{}
	info, statErr := fs.Stat(file)
	switch {
	case statErr != nil:
		if err := fs.MkdirAll(filepath.Dir(file), 0755); err != nil {
			return Change{}, false, errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", file)
		}
	case info.Mode().IsRegular():
		read, err := lines.Read(fs, file)
		if err != nil {
			return Change{}, false, err
		}
		if err := Into(read, vars); err != nil {
			return Change{}, false, err
		}
	default:
		return Change{}, false, errors.Newf(errors.ErrFileAccess, "%s is not an anek file", file).
			WithDetail("path", file)
	}

	old, existed := vars[key]
	vars[key] = value

	var b strings.Builder
	for _, k := range vars.Keys() {
		b.WriteString(k + Separator + vars[k] + "\n")
	}
	if err := fs.WriteFile(file, []byte(b.String()), 0644); err != nil {
		return Change{}, false, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", file).
			WithDetail("path", file)
	}

	return Change{File: file, Variable: key, Old: old, New: value, Existed: existed}, true, nil
}

// UpdateFromStream applies every line of r to the file named by
// fileTemplate, calling onChange for each applied update. When the
// template has placeholders each line must provide its arguments with the
// "::" prefix, or reuse the file of a previous line.
func UpdateFromStream(fs types.FS, fileTemplate *template.Template, r io.Reader, onChange func(Change)) error {
	literal, isLiteral := fileTemplate.Literal()
	current := ""

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		file := ""
		if idx := strings.LastIndex(line, FileSeparator); idx >= 0 {
			if isLiteral {
				return errors.Newf(errors.ErrInvalidInput, "the file %q provided is not a template", literal)
			}
			vars := types.VariableMap{}
			for i, arg := range strings.Split(line[:idx], FileSeparator) {
				vars[strconv.Itoa(i+1)] = arg
			}
			rendered, err := fileTemplate.Render(template.RenderOptions{Variables: vars})
			if err != nil {
				return err
			}
			current = rendered
			file = rendered
			line = line[idx+len(FileSeparator):]
		} else if isLiteral {
			file = literal
		} else if current != "" {
			file = current
		} else {
			return errors.Newf(errors.ErrInvalidInput, "no arguments for the file template %q", fileTemplate.Source())
		}

		change, ok, err := Update(fs, file, line)
		if err != nil {
			return err
		}
		if ok && onChange != nil {
			onChange(change)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot read update lines")
	}
	return nil
}
