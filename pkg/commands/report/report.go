// Package report builds a markdown document of a project: a table of
// contents, then each category's description followed by its files.
package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/lines"
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/arthur-debert/anek/pkg/paths"
	"github.com/arthur-debert/anek/pkg/types"
)

// Extension is appended to the report file name
const Extension = ".md"

const preamble = "[Anek Configuration](https://github.com/Atreyagaurav/anek) File\n\n"

// ReportOptions defines the options for the Report command.
type ReportOptions struct {
	Project *paths.Project
	// Filename is the report name without extension, written in Dir
	Filename string
	Dir      string
	// Write saves the report; otherwise only Content is returned
	Write bool
	// Now stamps the report, time.Now when nil
	Now func() time.Time
	// OnGenerate is called with the target path before writing
	OnGenerate func(path string)
}

// Report generates the project report
func Report(opts ReportOptions) (*types.ReportResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Report").Str("filename", opts.Filename).Msg("Executing command")

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	result := &types.ReportResult{}
	if opts.Write {
		name := opts.Filename
		if name == "" {
			return nil, errors.New(errors.ErrInvalidInput, "report file name is empty")
		}
		result.Path = filepath.Join(opts.Dir, strings.TrimSuffix(name, Extension)+Extension)
		if opts.OnGenerate != nil {
			opts.OnGenerate(result.Path)
		}
	}

	content, err := Generate(opts.Project, now())
	if err != nil {
		return nil, err
	}
	result.Content = content

	if opts.Write {
		if err := opts.Project.FS().WriteFile(result.Path, []byte(content), 0644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "couldn't write report %s", result.Path).
				WithDetail("path", result.Path)
		}
	}

	log.Info().Str("command", "Report").Str("path", result.Path).Msg("Command finished")
	return result, nil
}

// Generate returns the report markdown
func Generate(p *paths.Project, at time.Time) (string, error) {
	var toc, contents strings.Builder

	for i, c := range types.AllCategories() {
		fmt.Fprintf(&toc, "%d. %s\n", i+1, c.Title())
		fmt.Fprintf(&contents, "\n# %s\n%s\n", c.Title(), c.Description())

		names, err := lines.ListFilenames(p.FS(), p.Directory(c))
		if err != nil {
			return "", err
		}
		for j, name := range names {
			fmt.Fprintf(&toc, "   %d.%d. %s\n", i+1, j+1, name)
			fmt.Fprintf(&contents, "## %s\n", name)

			path := p.File(c, name)
			data, err := p.FS().ReadFile(path)
			if err != nil {
				return "", errors.Wrapf(err, errors.ErrFileAccess, "couldn't open file %s", path).
					WithDetail("path", path)
			}
			contents.WriteString("```\n")
			contents.Write(data)
			contents.WriteString("```\n")
		}
	}

	var b strings.Builder
	b.WriteString(preamble)
	fmt.Fprintf(&b, "Generated at: %s\n\n", at.Format("2006-01-02 15:04:05"))
	b.WriteString("# Table of Contents\n")
	b.WriteString(toc.String())
	b.WriteString(contents.String())
	return b.String(), nil
}
