package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/logging"
)

// EnvPrefix is the prefix of environment variables overriding config keys.
// ANEK_SHELL_PROGRAM maps to shell.program.
const EnvPrefix = "ANEK_"

// Default returns the configuration built from the embedded defaults only
func Default() (*Config, error) {
	return Load("")
}

// Load builds the effective configuration. configDir is the project's
// .anek directory and may be empty when no project is known.
func Load(configDir string) (*Config, error) {
	log := logging.GetLogger("config")

	k, err := loadKoanf(configDir)
	if err != nil {
		return nil, err
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if cfg.Shell.Backend != BackendSystem && cfg.Shell.Backend != BackendBuiltin {
		return nil, errors.Newf(errors.ErrConfigParse,
			"invalid shell.backend %q, expected %q or %q", cfg.Shell.Backend, BackendSystem, BackendBuiltin).
			WithDetail("backend", cfg.Shell.Backend)
	}

	log.Debug().
		Str("program", cfg.Shell.Program).
		Str("backend", cfg.Shell.Backend).
		Bool("subcommands", cfg.Shell.Subcommands).
		Msg("Configuration loaded")

	return &cfg, nil
}

func loadKoanf(configDir string) (*koanf.Koanf, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config, 3. project config
	for _, path := range []string{userConfigPath(), projectConfigPath(configDir)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKey(s)
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	return k, nil
}

// envKey maps ANEK_SHELL_PROGRAM to shell.program. Only the first
// underscore separates the section, so ANEK_REPORT_FILENAME works too.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func userConfigPath() string {
	xdg.Reload()
	if xdg.ConfigHome == "" {
		return ""
	}
	return filepath.Join(xdg.ConfigHome, "anek", "config.toml")
}

func projectConfigPath(configDir string) string {
	if configDir == "" {
		return ""
	}
	return filepath.Join(configDir, ProjectConfigFile)
}
