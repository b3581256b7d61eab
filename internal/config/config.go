// Package config resolves the two storage roots everything else hangs
// off: the build root and the install root. Both normally live on
// high-capacity scratch storage rather than in the (quota-limited,
// backed-up) home filesystem that holds source checkouts.
//
// Resolution order: environment (GEOS_BUILD_ROOT, GEOS_INSTALL_ROOT),
// then an optional config file at $XDG_CONFIG_HOME/geodev/config.toml.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

// Config holds the resolved roots.
type Config struct {
	BuildRoot   string
	InstallRoot string
}

const (
	envPrefix      = "geos"
	configDirName  = "geodev"
	configFileName = "config"
)

// Load resolves the roots without validating them; see Validate.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType("toml")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, configDirName))
	}

	v.SetEnvPrefix(envPrefix)
	if err := v.BindEnv("build_root"); err != nil {
		return nil, eris.Wrap(err, "config: bind build_root")
	}
	if err := v.BindEnv("install_root"); err != nil {
		return nil, eris.Wrap(err, "config: bind install_root")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, eris.Wrap(err, "config: read config file")
		}
	}

	return &Config{
		BuildRoot:   v.GetString("build_root"),
		InstallRoot: v.GetString("install_root"),
	}, nil
}

// Validate checks that both roots are set and name existing
// directories. It runs before any filesystem side effect so a typo in
// an environment variable cannot scatter build trees.
func (c *Config) Validate() error {
	if err := checkRoot("GEOS_BUILD_ROOT", c.BuildRoot); err != nil {
		return err
	}
	return checkRoot("GEOS_INSTALL_ROOT", c.InstallRoot)
}

func checkRoot(name, dir string) error {
	if dir == "" {
		return eris.Errorf("config: %s is not set", name)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return eris.Wrapf(err, "config: %s (%s)", name, dir)
	}
	if !info.IsDir() {
		return eris.Errorf("config: %s (%s) is not a directory", name, dir)
	}
	return nil
}
