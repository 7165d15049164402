package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/melih-ucgun/ospack/internal/consts"
	"github.com/spf13/viper"
)

// FallbackConfig configures the ecosystem installer.
type FallbackConfig struct {
	Tool    string `mapstructure:"tool"`
	Runtime string `mapstructure:"runtime"`
	Command string `mapstructure:"command"`
	Probe   string `mapstructure:"probe"`
	// SkipProbe disables the "already loadable" check.
	SkipProbe bool `mapstructure:"skip_probe"`
}

// Config is the merged result of defaults, ospack.yaml and OSPACK_* env.
type Config struct {
	Debug         bool           `mapstructure:"debug"`
	DryRun        bool           `mapstructure:"dry_run"`
	StatePath     string         `mapstructure:"state_path"`
	ExtraPaths    []string       `mapstructure:"extra_paths"`
	OverridesFile string         `mapstructure:"overrides_file"`
	Fallback      FallbackConfig `mapstructure:"fallback"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

func loadEnv(v *viper.Viper) error {
	binds := []struct {
		key, env string
		def      any
	}{
		{"debug", "OSPACK_DEBUG", false},
		{"dry_run", "OSPACK_DRY_RUN", false},
		{"state_path", "OSPACK_STATE_PATH", consts.GetStateFilePath()},
		{"extra_paths", "OSPACK_EXTRA_PATHS", []string{}},
		{"overrides_file", "OSPACK_OVERRIDES", consts.GetOverridesFilePath()},
		{"fallback.tool", "OSPACK_FALLBACK_TOOL", ""},
		{"fallback.runtime", "OSPACK_FALLBACK_RUNTIME", ""},
		{"fallback.command", "OSPACK_FALLBACK_COMMAND", ""},
		{"fallback.probe", "OSPACK_FALLBACK_PROBE", ""},
		{"fallback.skip_probe", "OSPACK_FALLBACK_SKIP_PROBE", false},
	}
	for _, b := range binds {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return err
		}
		v.SetDefault(b.key, b.def)
	}
	return nil
}

// LoadDotEnv loads KEY=value pairs from a .env file into the process
// environment without overwriting variables that are already set. A
// missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = consts.EnvFileName
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Load merges defaults, the config file and the environment. With an
// explicit path the file must exist; otherwise ospack.yaml is looked up
// in ~/.ospack and the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()
	if err := loadEnv(v); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(consts.ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(consts.GetOspackDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config dosyası okunamadı: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	// OSPACK_EXTRA_PATHS arrives as one colon separated string.
	var paths []string
	for _, p := range cfg.ExtraPaths {
		for _, part := range strings.Split(p, ":") {
			if part = strings.TrimSpace(part); part != "" {
				paths = append(paths, part)
			}
		}
	}
	cfg.ExtraPaths = paths
	return &cfg, nil
}
