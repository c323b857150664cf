package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Backend names accepted by shell.backend
const (
	BackendSystem  = "system"
	BackendBuiltin = "builtin"
)

// ProjectConfigFile is the name of the project level config file inside
// the .anek directory.
const ProjectConfigFile = "config.toml"

// Config is the effective anek configuration
type Config struct {
	Editor string       `koanf:"editor" toml:"editor"`
	Shell  ShellConfig  `koanf:"shell" toml:"shell"`
	Report ReportConfig `koanf:"report" toml:"report"`
	Output OutputConfig `koanf:"output" toml:"output"`
}

// ShellConfig controls how rendered commands are executed
type ShellConfig struct {
	Program     string `koanf:"program" toml:"program"`
	Backend     string `koanf:"backend" toml:"backend"`
	Subcommands bool   `koanf:"subcommands" toml:"subcommands"`
}

// ReportConfig holds defaults for `anek report`
type ReportConfig struct {
	Filename string `koanf:"filename" toml:"filename"`
}

// OutputConfig controls terminal output
type OutputConfig struct {
	Color  bool   `koanf:"color" toml:"color"`
	Timing bool   `koanf:"timing" toml:"timing"`
	Styles string `koanf:"styles" toml:"styles"`
}

// StylesPath resolves output.styles against dir. Empty when unset.
func (c *Config) StylesPath(dir string) string {
	p := c.Output.Styles
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// EditorCommand returns $EDITOR when set, the configured editor otherwise
func (c *Config) EditorCommand() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	return c.Editor
}

// TOML encodes the configuration the way it would be written in a config file
func (c *Config) TOML() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
