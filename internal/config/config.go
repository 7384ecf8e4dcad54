package config

import (
	"io/fs"
	"os"

	"github.com/spf13/viper"

	"github.com/thoreinstein/usersrc2xml/internal/errors"
	"github.com/thoreinstein/usersrc2xml/internal/paths"
)

// EnvPrefix prefixes environment variable overrides, e.g. USERSRC2XML_INDENT.
const EnvPrefix = "USERSRC2XML"

// DirEnv overrides the per-user config directory searched by Load.
const DirEnv = EnvPrefix + "_CONFIG_DIR"

// Config represents the tool settings.
type Config struct {
	Indent string `mapstructure:"indent" yaml:"indent"`
	Escape bool   `mapstructure:"escape" yaml:"escape"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Indent: "  ",
		Escape: true,
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if dir := os.Getenv(DirEnv); dir != "" {
		v.AddConfigPath(".")
		v.AddConfigPath(dir)
	} else {
		for _, dir := range paths.ConfigSearchPaths() {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("indent", d.Indent)
	v.SetDefault("escape", d.Escape)
	v.SetDefault("format", d.Format)
	return v
}

// Load reads the settings.
// If path is provided, it reads from that specific file and a missing file is an error.
// If path is empty, it searches the default locations and uses defaults when nothing is found.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		switch {
		case notFound && path == "":
			// Implicit load without a file: defaults apply
		case path != "" && errors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating config")
	}

	return &cfg, nil
}
