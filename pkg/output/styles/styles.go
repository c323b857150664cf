// Package styles defines the visual styling for anek's terminal output.
//
// All styles use semantic names and adaptive colors that adjust to light
// and dark terminal themes. The defaults are embedded from styles.yaml and
// can be replaced at runtime with LoadStyles.
package styles

import (
	_ "embed"
	"os"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	MarginLeft   int    `yaml:"marginLeft,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
	PaddingRight int    `yaml:"paddingRight,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// StyleRegistry maps semantic names to lipgloss styles
var StyleRegistry map[string]lipgloss.Style

func init() {
	if err := Parse(defaultStyles); err != nil {
		panic("failed to load embedded styles: " + err.Error())
	}
}

// LoadStyles replaces the registry with the styles of a YAML file
func LoadStyles(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read styles file %s", path)
	}
	return Parse(data)
}

// Parse replaces the registry with the styles of a YAML document
func Parse(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "failed to parse styles")
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	registry := make(map[string]lipgloss.Style, len(config.Styles))
	for name, def := range config.Styles {
		registry[name] = buildStyle(def, colors)
	}
	StyleRegistry = registry
	return nil
}

func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}

	if color, ok := colors[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if color, ok := colors[def.Background]; ok {
		style = style.Background(color)
	}

	if def.MarginLeft > 0 {
		style = style.MarginLeft(def.MarginLeft)
	}
	if def.PaddingLeft > 0 || def.PaddingRight > 0 {
		style = style.Padding(0, def.PaddingRight, 0, def.PaddingLeft)
	}

	return style
}

// GetStyle safely retrieves a style from the registry
func GetStyle(name string) lipgloss.Style {
	if style, ok := StyleRegistry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
